package untis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"untisd/internal/models"
)

const (
	userAgent      = "untisd"
	requestTimeout = 15 * time.Second
)

// ClientInterface is what the timetable service consumes; tests swap
// in a fake.
type ClientInterface interface {
	Login(ctx context.Context) error
	Logout(ctx context.Context)
	LoggedIn() bool
	SchoolyearEnd(ctx context.Context) (time.Time, error)
	Timetable(ctx context.Context, start, end time.Time) ([]models.Lesson, error)
}

// Client speaks the WebUntis JSON-RPC protocol for one school account.
// It keeps the JSESSIONID between calls; whether the session survives
// across poll cycles is the caller's decision (keep_logged_in).
type Client struct {
	endpoint string
	school   string
	username string
	password string

	source     SourceType
	sourceName string
	extended   bool

	loc  *time.Location
	http *http.Client

	sessionID string
	elementID int
	elemType  int
	personID  int
	persType  int
}

// NewClient builds a client for one school account. extended requests
// the lesson and substitution info texts with every timetable row;
// without it the server returns the bare period data.
func NewClient(server, school, username, password string, source SourceType, sourceName string, extended bool, loc *time.Location) *Client {
	if loc == nil {
		loc = time.Local
	}
	// Plain host names default to https; an explicit scheme is kept.
	scheme := "https"
	if strings.HasPrefix(server, "http://") {
		scheme = "http"
	}
	server = strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(server, "https://"), "http://"), "/")
	return &Client{
		endpoint:   fmt.Sprintf("%s://%s/WebUntis/jsonrpc.do?school=%s", scheme, server, school),
		school:     school,
		username:   username,
		password:   password,
		source:     source,
		sourceName: sourceName,
		extended:   extended,
		loc:        loc,
		http:       &http.Client{Timeout: requestTimeout},
	}
}

func (c *Client) LoggedIn() bool {
	return c.sessionID != ""
}

// Login authenticates and resolves the configured timetable source to
// an element id. For source "student" with an empty source name the
// authenticated person itself is used.
func (c *Client) Login(ctx context.Context) error {
	var auth authResult
	err := c.call(ctx, "authenticate", map[string]any{
		"user":     c.username,
		"password": c.password,
		"client":   userAgent,
	}, &auth)
	if err != nil {
		return err
	}
	c.sessionID = auth.SessionID
	c.personID = auth.PersonID
	c.persType = auth.PersonType

	return c.resolveElement(ctx)
}

// Logout ends the session server-side. Errors are ignored: the
// session expires on its own and the next cycle authenticates fresh.
func (c *Client) Logout(ctx context.Context) {
	if c.sessionID == "" {
		return
	}
	_ = c.call(ctx, "logout", map[string]any{}, nil)
	c.sessionID = ""
}

// SchoolyearEnd returns the end date of the current school year so
// timetable requests can be clamped to it.
func (c *Client) SchoolyearEnd(ctx context.Context) (time.Time, error) {
	var year schoolyear
	if err := c.call(ctx, "getCurrentSchoolyear", map[string]any{}, &year); err != nil {
		return time.Time{}, err
	}
	if year.EndDate == 0 {
		return time.Time{}, fmt.Errorf("untis: no active schoolyear")
	}
	return dateFromInt(year.EndDate, 0, c.loc), nil
}

// Timetable fetches the raw periods for [start, end] and decodes them
// into lessons. Periods with unusable date or time fields are skipped
// rather than failing the whole request.
func (c *Client) Timetable(ctx context.Context, start, end time.Time) ([]models.Lesson, error) {
	var periods []rawPeriod
	err := c.call(ctx, "getTimetable", map[string]any{
		"options": map[string]any{
			"element": map[string]any{
				"id":   c.elementID,
				"type": c.elemType,
			},
			"startDate":     dateToInt(start),
			"endDate":       dateToInt(end),
			"showLsText":    c.extended,
			"showSubstText": c.extended,
			"showInfo":      true,
			"klasseFields":  []string{"id", "name", "longname"},
			"teacherFields": []string{"id", "name", "longname"},
			"subjectFields": []string{"id", "name", "longname"},
			"roomFields":    []string{"id", "name", "longname"},
		},
	}, &periods)
	if err != nil {
		return nil, err
	}

	lessons := make([]models.Lesson, 0, len(periods))
	for _, p := range periods {
		lesson, ok := decodePeriod(p, c.loc)
		if !ok {
			continue
		}
		lessons = append(lessons, lesson)
	}
	return lessons, nil
}

func (c *Client) resolveElement(ctx context.Context) error {
	elemType, ok := c.source.ElementType()
	if !ok {
		return fmt.Errorf("untis: unknown timetable source %q", c.source)
	}
	c.elemType = elemType

	if c.source == SourceStudent && c.sourceName == "" {
		c.elementID = c.personID
		return nil
	}

	method := map[int]string{
		ElementClass:   "getKlassen",
		ElementTeacher: "getTeachers",
		ElementSubject: "getSubjects",
		ElementRoom:    "getRooms",
		ElementStudent: "getStudents",
	}[elemType]

	var elements []rawElement
	if err := c.call(ctx, method, map[string]any{}, &elements); err != nil {
		return err
	}
	for _, el := range elements {
		if el.Name == c.sourceName {
			c.elementID = el.ID
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrElementNotFound, c.sourceName)
}

func (c *Client) call(ctx context.Context, method string, params any, result any) error {
	body, err := json.Marshal(rpcRequest{
		ID:      strconv.FormatInt(time.Now().UnixNano(), 10),
		Method:  method,
		Params:  params,
		JSONRPC: "2.0",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "JSESSIONID", Value: c.sessionID})
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("untis: %s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("untis: %s returned HTTP %d", method, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("untis: reading %s response: %w", method, err)
	}

	var rpc rpcResponse
	if err := json.Unmarshal(data, &rpc); err != nil {
		return fmt.Errorf("untis: decoding %s response: %w", method, err)
	}
	if rpc.Error != nil {
		return rpcErrToSentinel(method, rpc.Error)
	}
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(rpc.Result, result); err != nil {
		return fmt.Errorf("untis: decoding %s result: %w", method, err)
	}
	return nil
}

func rpcErrToSentinel(method string, e *rpcError) error {
	switch e.Code {
	case codeBadCredentials:
		return ErrBadCredentials
	case codeNotAuthenticated:
		return ErrNotAuthenticated
	case codeNoRight:
		return fmt.Errorf("%w (%s)", ErrNoRight, method)
	default:
		return fmt.Errorf("untis: %s failed: %s (code %d)", method, e.Message, e.Code)
	}
}

// decodePeriod turns a raw row into a Lesson. Only date and times are
// validated; everything else is optional per-school data.
func decodePeriod(p rawPeriod, loc *time.Location) (models.Lesson, bool) {
	if p.Date == 0 || p.EndTime < p.StartTime {
		return models.Lesson{}, false
	}

	lesson := models.Lesson{
		ID:               p.ID,
		Start:            dateFromInt(p.Date, p.StartTime, loc),
		End:              dateFromInt(p.Date, p.EndTime, loc),
		Status:           decodeStatus(p),
		Subjects:         decodeElements(p.Subjects),
		Rooms:            decodeElements(p.Rooms),
		Teachers:         decodeElements(p.Teachers),
		Classes:          decodeElements(p.Classes),
		OriginalRooms:    decodeOriginals(p.Rooms),
		OriginalTeachers: decodeOriginals(p.Teachers),
		LessonText:       p.LessonText,
		SubstitutionText: p.SubstText,
		LessonNumber:     p.LessonNum,
	}
	return lesson, true
}

func decodeStatus(p rawPeriod) models.LessonStatus {
	switch p.Code {
	case "cancelled":
		return models.StatusCancelled
	case "irregular":
		return models.StatusIrregular
	}
	for _, el := range append(p.Teachers, p.Rooms...) {
		if el.OrgName != "" {
			return models.StatusSubstituted
		}
	}
	return models.StatusRegular
}

func decodeElements(raw []rawElement) []models.NameRef {
	if len(raw) == 0 {
		return nil
	}
	out := make([]models.NameRef, 0, len(raw))
	for _, el := range raw {
		out = append(out, models.NameRef{Name: el.Name, LongName: el.LongName})
	}
	return out
}

// decodeOriginals extracts the originally scheduled elements from
// substitution rows (orgname set on the replacement entry).
func decodeOriginals(raw []rawElement) []models.NameRef {
	var out []models.NameRef
	for _, el := range raw {
		if el.OrgName != "" {
			out = append(out, models.NameRef{Name: el.OrgName})
		}
	}
	return out
}

func dateToInt(t time.Time) int {
	return t.Year()*10000 + int(t.Month())*100 + t.Day()
}

func dateFromInt(date, hhmm int, loc *time.Location) time.Time {
	year := date / 10000
	month := time.Month(date / 100 % 100)
	day := date % 100
	return time.Date(year, month, day, hhmm/100, hhmm%100, 0, 0, loc)
}
