package common

import (
	"encoding/json"
	"strings"
)

// StringList is a list of strings that also accepts a single delimited
// string when unmarshaling JSON. AI analysis payloads deliver fields
// like alliance members either as an array or as one comma/space
// separated string; normalization happens here, once, so downstream
// code only ever sees a list.
type StringList []string

func (s *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = trimNonEmpty(list)
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = SplitNameList(single)
	return nil
}

// SplitNameList splits a delimited string of person references into a
// list. Commas take precedence so references like "Person 3" survive;
// without commas, whitespace delimits.
func SplitNameList(s string) []string {
	if strings.Contains(s, ",") {
		return trimNonEmpty(strings.Split(s, ","))
	}
	return trimNonEmpty(strings.Fields(s))
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
