/*
 *    Copyright 2025 blockarchitech
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *        http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

// Package request turns resolved node parameters into Reminders API request
// descriptors. Nothing here performs I/O.
package request

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// OperationRequest describes one outbound call. Path is a template whose
// {name} placeholders are filled from PathParams, each escaped as a single
// path segment.
type OperationRequest struct {
	Method     string
	Path       string
	PathParams map[string]string
	Query      url.Values
	Body       map[string]any
}

// New starts a request with empty params and query.
func New(method, path string) *OperationRequest {
	return &OperationRequest{
		Method:     method,
		Path:       path,
		PathParams: map[string]string{},
		Query:      url.Values{},
	}
}

// WithParam sets a path parameter.
func (r *OperationRequest) WithParam(name, value string) *OperationRequest {
	r.PathParams[name] = value
	return r
}

// WithBody sets the JSON body.
func (r *OperationRequest) WithBody(body map[string]any) *OperationRequest {
	r.Body = body
	return r
}

// RenderPath substitutes path parameters. A placeholder without a value is an error.
func (r *OperationRequest) RenderPath() (string, error) {
	var b strings.Builder
	rest := r.Path
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			return b.String(), nil
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			return "", fmt.Errorf("unterminated placeholder in path %q", r.Path)
		}
		name := rest[open+1 : open+end]
		value, ok := r.PathParams[name]
		if !ok {
			return "", fmt.Errorf("missing path parameter %q for %q", name, r.Path)
		}
		b.WriteString(rest[:open])
		b.WriteString(url.PathEscape(value))
		rest = rest[open+end+1:]
	}
}

// URL joins base, the rendered path and the encoded query.
func (r *OperationRequest) URL(base string) (string, error) {
	path, err := r.RenderPath()
	if err != nil {
		return "", err
	}
	u := strings.TrimRight(base, "/") + path
	if len(r.Query) > 0 {
		u += "?" + r.Query.Encode()
	}
	return u, nil
}

// String is used in logs and span names.
func (r *OperationRequest) String() string {
	return r.Method + " " + r.Path
}

// setBool writes a boolean query parameter in the API's "true"/"false" form.
func setBool(q url.Values, key string, b bool) {
	q.Set(key, strconv.FormatBool(b))
}

func setIfNotEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
