/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package api is a typed HTTP client for the petstore endpoints.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomoncle/hummerdata/example/domain"
	"github.com/tomoncle/hummerdata/types"
)

// StatusError is returned for non-200 responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("petstore: %d %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

type PetClient struct {
	baseURL string
	client  *http.Client
}

// NewPetClient targets baseURL, e.g. "http://localhost:8080". A nil client
// means http.DefaultClient.
func NewPetClient(baseURL string, client *http.Client) *PetClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &PetClient{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// All lists pet names for pageable, sent as page, size and sort parameters.
func (c *PetClient) All(ctx context.Context, pageable types.Pageable) ([]*domain.NameDTO, error) {
	var names []*domain.NameDTO
	if err := c.get(ctx, "/pets", pageable.Query(), &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (c *PetClient) Get(ctx context.Context, name string) (*domain.PetDTO, error) {
	pet := new(domain.PetDTO)
	if err := c.get(ctx, "/pets/"+url.PathEscape(name), nil, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func (c *PetClient) get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body struct {
			Error string `json:"error"`
		}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if json.Unmarshal(data, &body) != nil || body.Error == "" {
			body.Error = strings.TrimSpace(string(data))
		}
		return &StatusError{StatusCode: resp.StatusCode, Message: body.Error}
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}
