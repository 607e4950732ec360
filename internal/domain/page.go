package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexInt decodes integers the Flo API sends either as numbers, numeric
// strings or null.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*f = FlexInt(n)
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexInt(int(n))
	return nil
}

// FlexString decodes values that may arrive as a string or a number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(string(data))
	return nil
}

// PageRecords counts records in the whole result and on the current page.
type PageRecords struct {
	Total  FlexInt `json:"total"`
	OnPage FlexInt `json:"onPage"`
}

// Page is the pagination block attached to Flo list responses. Previous and
// Next are zero when there is no such page.
type Page struct {
	Previous FlexInt     `json:"previous"`
	Current  FlexInt     `json:"current"`
	Next     FlexInt     `json:"next"`
	Total    FlexInt     `json:"total"`
	Size     FlexInt     `json:"size"`
	Records  PageRecords `json:"records"`
}

// List is a page of records as returned by the Flo API.
type List[T any] struct {
	Data []T  `json:"data"`
	Page Page `json:"page"`
}
