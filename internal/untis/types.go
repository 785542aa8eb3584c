// Package untis is a minimal WebUntis JSON-RPC client covering the
// calls the daemon needs: authenticate, logout, element lookup and
// timetable retrieval.
package untis

import (
	"errors"

	json "github.com/goccy/go-json"
)

// Element types as defined by the WebUntis JSON-RPC API.
const (
	ElementClass   = 1
	ElementTeacher = 2
	ElementSubject = 3
	ElementRoom    = 4
	ElementStudent = 5
)

// SourceType is the configured timetable source kind.
type SourceType string

const (
	SourceClass   SourceType = "class"
	SourceTeacher SourceType = "teacher"
	SourceSubject SourceType = "subject"
	SourceRoom    SourceType = "room"
	SourceStudent SourceType = "student"
)

// ElementType maps a source kind to its wire element type.
func (s SourceType) ElementType() (int, bool) {
	switch s {
	case SourceClass:
		return ElementClass, true
	case SourceTeacher:
		return ElementTeacher, true
	case SourceSubject:
		return ElementSubject, true
	case SourceRoom:
		return ElementRoom, true
	case SourceStudent:
		return ElementStudent, true
	default:
		return 0, false
	}
}

var (
	ErrBadCredentials   = errors.New("untis: bad credentials")
	ErrNotAuthenticated = errors.New("untis: not authenticated")
	ErrNoRight          = errors.New("untis: no right for requested data")
	ErrElementNotFound  = errors.New("untis: timetable source not found")
)

// WebUntis JSON-RPC error codes.
const (
	codeBadCredentials   = -8504
	codeNotAuthenticated = -8520
	codeNoRight          = -8509
)

type rpcRequest struct {
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	JSONRPC string `json:"jsonrpc"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type authResult struct {
	SessionID  string `json:"sessionId"`
	PersonType int    `json:"personType"`
	PersonID   int    `json:"personId"`
	ClassID    int    `json:"klasseId"`
}

// rawElement is a named element as the server lists it; orgname marks
// a substitution (the originally scheduled teacher/room).
type rawElement struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LongName string `json:"longname"`
	OrgName  string `json:"orgname,omitempty"`
}

// rawPeriod is one timetable row; dates are yyyymmdd, times hhmm.
type rawPeriod struct {
	ID        int    `json:"id"`
	Date      int    `json:"date"`
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
	Code      string `json:"code,omitempty"`

	Classes  []rawElement `json:"kl,omitempty"`
	Teachers []rawElement `json:"te,omitempty"`
	Subjects []rawElement `json:"su,omitempty"`
	Rooms    []rawElement `json:"ro,omitempty"`

	LessonText string `json:"lstext,omitempty"`
	SubstText  string `json:"substText,omitempty"`
	LessonNum  int    `json:"lsnumber,omitempty"`
}

type schoolyear struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	StartDate int    `json:"startDate"`
	EndDate   int    `json:"endDate"`
}
