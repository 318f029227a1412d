package wsdlxml

import (
	"strconv"
)

// DecodeError reports why a document could not be decoded. Context names the
// construct being read, e.g. "binding CalcSoap operation Add".
type DecodeError struct {
	File    string
	Line    int
	Column  int
	Context string
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	msg := e.Message
	if e.Context != "" {
		msg = e.Context + ": " + msg
	}
	if e.File != "" {
		msg = e.File + ": " + msg
	}
	if e.Line > 0 {
		if e.Column > 0 {
			msg = msg + " (line " + strconv.Itoa(e.Line) + ", column " + strconv.Itoa(e.Column) + ")"
		} else {
			msg = msg + " (line " + strconv.Itoa(e.Line) + ")"
		}
	}
	if e.Cause != nil {
		msg = msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
