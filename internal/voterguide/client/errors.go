package client

import (
	"errors"
	"fmt"

	"github.com/iurnickita/voterguide/internal/voterguide/endpoint"
)

// Ошибки пакета. Ошибки проверки параметров возвращаются до сетевого запроса
var (
	ErrUnknownEndpoint    = endpoint.ErrUnknownEndpoint
	ErrParameterMismatch  = endpoint.ErrParameterMismatch
	ErrTransportFailure   = errors.New("transport failure")
	ErrApplicationFailure = errors.New("application failure")
)

// TransportError - ошибка HTTP-уровня: сеть или статус вне 2xx
type TransportError struct {
	Endpoint   endpoint.Name
	StatusCode int // 0, если ответа не было
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s: %v", ErrTransportFailure, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("%s: %s: request failed with %d: %s", ErrTransportFailure, e.Endpoint, e.StatusCode, e.Message)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransportFailure
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError - HTTP-запрос успешен, но success в теле ответа false
type ApplicationError struct {
	Endpoint endpoint.Name
	Status   string
	Body     []byte
}

func (e *ApplicationError) Error() string {
	if e.Status == "" {
		return fmt.Sprintf("%s: %s", ErrApplicationFailure, e.Endpoint)
	}
	return fmt.Sprintf("%s: %s: %s", ErrApplicationFailure, e.Endpoint, e.Status)
}

func (e *ApplicationError) Is(target error) bool {
	return target == ErrApplicationFailure
}
