package parse

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/xxxsen/nsdav/errs"
	"github.com/xxxsen/nsdav/utils"
)

// decode unmarshals body into v, structural failures are reported as *errs.DecodeError.
func decode(what string, body []byte, v interface{}) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return errs.Decode(what, fmt.Errorf("empty body"))
	}
	if err := xml.Unmarshal(body, v); err != nil {
		return errs.Decode(what, err)
	}
	return nil
}

func optText(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

// optBool follows the wire convention, only the literal "true" is true.
func optBool(s *string) *bool {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if len(v) == 0 {
		return nil
	}
	b := v == "true"
	return &b
}

func optUnescape(s *string) *string {
	if s == nil {
		return nil
	}
	v, err := url.PathUnescape(*s)
	if err != nil {
		v = *s
	}
	return &v
}

func present(v *struct{}) *bool {
	b := v != nil
	return &b
}

// reader coerces optional leaves of one document and keeps the first failure.
type reader struct {
	what string
	err  error
}

func (r *reader) fail(name string, err error) {
	if r.err == nil {
		r.err = errs.Decode(r.what, fmt.Errorf("element <%s>: %w", name, err))
	}
}

func (r *reader) optInt(name string, s *string) *int64 {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if len(v) == 0 {
		return nil
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return &i
}

func (r *reader) optHexInt(name string, s *string) *int64 {
	if s == nil || len(strings.TrimSpace(*s)) == 0 {
		return nil
	}
	i, err := utils.DecodeCursor(*s)
	if err != nil {
		r.fail(name, err)
		return nil
	}
	return &i
}

// numeric zones first, RFC1123 would accept "+0800" as an unknown abbreviation at offset 0.
// The single digit day forms also take two digit days.
var timeLayouts = []string{
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 MST",
}

func (r *reader) optTime(name string, s *string) *time.Time {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if len(v) == 0 {
		return nil
	}
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, v)
		if err == nil {
			return &t
		}
		lastErr = err
	}
	r.fail(name, lastErr)
	return nil
}

// optMillis reads a millisecond unix epoch.
func (r *reader) optMillis(name string, s *string) *time.Time {
	ms := r.optInt(name, s)
	if ms == nil {
		return nil
	}
	t := time.UnixMilli(*ms)
	return &t
}

type faultWire struct {
	Exception *string `xml:"exception"`
	Message   *string `xml:"message"`
}

// ParseFault turns a non success response into a fault, bodies that are not xml leave
// the optional fields nil.
func ParseFault(status int, body []byte) *errs.FaultError {
	fe := &errs.FaultError{StatusCode: status}
	wire := &faultWire{}
	if err := xml.Unmarshal(body, wire); err != nil {
		return fe
	}
	fe.Exception = optText(wire.Exception)
	fe.Message = optText(wire.Message)
	return fe
}
