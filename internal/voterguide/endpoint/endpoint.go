// Пакет endpoint. Таблица методов API
package endpoint

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Name - идентификатор метода API
type Name int

const (
	DeviceIDGenerate Name = iota
	VoterCreate
	VoterRetrieve
	VoterCount
	VoterAddressRetrieve
	VoterAddressSave
	OrganizationCount
	ElectionsRetrieve
	BallotItemOptionsRetrieve
	VoterBallotItemsRetrieve
	CandidatesRetrieve

	nameCount
)

// Имена параметров
const (
	ParamAPIKey         = "api_key"
	ParamVoterDeviceID  = "voter_device_id"
	ParamAddress        = "address"
	ParamOfficeWeVoteID = "office_we_vote_id"
)

// Ошибки пакета
var (
	ErrUnknownEndpoint   = errors.New("unknown endpoint")
	ErrParameterMismatch = errors.New("parameter mismatch")
)

// Descriptor - описание вызова метода API
type Descriptor struct {
	Name        Name
	Method      string
	Path        string
	Params      []string
	SuccessFlag bool // ответ содержит поле success
}

// table индексируется Name. Размер задан nameCount, пропуск элемента не скомпилируется
var table = [nameCount]Descriptor{
	DeviceIDGenerate:          get(DeviceIDGenerate),
	VoterCreate:               get(VoterCreate, ParamVoterDeviceID),
	VoterRetrieve:             get(VoterRetrieve, ParamVoterDeviceID),
	VoterCount:                get(VoterCount),
	VoterAddressRetrieve:      get(VoterAddressRetrieve, ParamVoterDeviceID),
	VoterAddressSave:          post(VoterAddressSave, ParamAPIKey, ParamVoterDeviceID, ParamAddress),
	OrganizationCount:         get(OrganizationCount),
	ElectionsRetrieve:         get(ElectionsRetrieve, ParamVoterDeviceID, ParamAPIKey),
	BallotItemOptionsRetrieve: get(BallotItemOptionsRetrieve, ParamVoterDeviceID, ParamAPIKey),
	VoterBallotItemsRetrieve:  get(VoterBallotItemsRetrieve, ParamVoterDeviceID, ParamAPIKey),
	CandidatesRetrieve:        get(CandidatesRetrieve, ParamOfficeWeVoteID),
}

var names = [nameCount]string{
	DeviceIDGenerate:          "deviceIdGenerate",
	VoterCreate:               "voterCreate",
	VoterRetrieve:             "voterRetrieve",
	VoterCount:                "voterCount",
	VoterAddressRetrieve:      "voterAddressRetrieve",
	VoterAddressSave:          "voterAddressSave",
	OrganizationCount:         "organizationCount",
	ElectionsRetrieve:         "electionsRetrieve",
	BallotItemOptionsRetrieve: "ballotItemOptionsRetrieve",
	VoterBallotItemsRetrieve:  "voterBallotItemsRetrieve",
	CandidatesRetrieve:        "candidatesRetrieve",
}

func get(n Name, params ...string) Descriptor {
	return Descriptor{Name: n, Method: http.MethodGet, Path: n.String() + "/", Params: params, SuccessFlag: true}
}

func post(n Name, params ...string) Descriptor {
	d := get(n, params...)
	d.Method = http.MethodPost
	return d
}

// String возвращает имя метода в API
func (n Name) String() string {
	if n < 0 || n >= nameCount {
		return fmt.Sprintf("Name(%d)", int(n))
	}
	return names[n]
}

// ParseName находит метод по имени в API
func ParseName(s string) (Name, error) {
	for i, name := range names {
		if name == s {
			return Name(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEndpoint, s)
}

// Names - все методы в порядке объявления
func Names() []Name {
	all := make([]Name, 0, nameCount)
	for n := Name(0); n < nameCount; n++ {
		all = append(all, n)
	}
	return all
}

// Resolve возвращает описание метода
func Resolve(n Name) (Descriptor, error) {
	if n < 0 || n >= nameCount {
		return Descriptor{}, fmt.Errorf("%w: %s", ErrUnknownEndpoint, n)
	}
	d := table[n]
	d.Params = append([]string(nil), d.Params...)
	return d, nil
}

// Requires сообщает, входит ли параметр в набор обязательных
func (d Descriptor) Requires(param string) bool {
	for _, p := range d.Params {
		if p == param {
			return true
		}
	}
	return false
}

// Validate проверяет, что набор ключей params в точности равен набору параметров метода
func (d Descriptor) Validate(params map[string]string) error {
	var missing, extra []string
	for _, p := range d.Params {
		if _, ok := params[p]; !ok {
			missing = append(missing, p)
		}
	}
	for key := range params {
		if !d.Requires(key) {
			extra = append(extra, key)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "unexpected "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("%w for %s: %s", ErrParameterMismatch, d.Name, strings.Join(parts, "; "))
}
