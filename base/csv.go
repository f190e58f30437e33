// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"bufio"
	"strings"
)

// Escape a field for a csv file separated by sep.
func Escape(text, sep string) string {
	if !strings.Contains(text, sep) &&
		!strings.Contains(text, "\"") &&
		!strings.ContainsAny(text, "\r\n") {
		return text
	}
	builder := strings.Builder{}
	builder.WriteRune('"')
	for _, c := range text {
		if c == '"' {
			builder.WriteString("\"\"")
		} else {
			builder.WriteRune(c)
		}
	}
	builder.WriteRune('"')
	return builder.String()
}

// JoinFields escapes and joins fields into one csv line without line terminator.
func JoinFields(fields []string, sep string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = Escape(field, sep)
	}
	return strings.Join(escaped, sep)
}

// ReadLines parses fields of each line of a csv file. The handler receives the
// line number and the fields, and stops the scan by returning false. Quoted
// fields may span lines.
func ReadLines(sc *bufio.Scanner, sep string, handler func(int, []string) bool) error {
	lineCount := 0               // line number of current position
	fields := make([]string, 0)  // fields for current line
	builder := strings.Builder{} // string builder for current field
	quoted := false              // whether current position in quote
	for sc.Scan() {
		line := sc.Text()
		if quoted {
			builder.WriteString("\r\n")
		}
		for i := 0; i < len(line); {
			switch {
			case !quoted && sep != "" && strings.HasPrefix(line[i:], sep):
				// end of field
				fields = append(fields, builder.String())
				builder.Reset()
				i += len(sep)
			case line[i] == '"':
				if quoted && i+1 < len(line) && line[i+1] == '"' {
					builder.WriteByte('"')
					i += 2
				} else {
					quoted = !quoted
					i++
				}
			default:
				builder.WriteByte(line[i])
				i++
			}
		}
		if !quoted {
			fields = append(fields, builder.String())
			builder.Reset()
			if !handler(lineCount, fields) {
				return nil
			}
			fields = []string{}
		}
		lineCount++
	}
	return sc.Err()
}
