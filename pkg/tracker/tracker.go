// Package tracker implements the issue-source client.
//
// It speaks the Jira-compatible REST search API: a JQL query is paged through
// /rest/api/2/search and each result is flattened into a [RawIssue]. Custom
// fields are not known until configuration load, so RawIssue carries them as a
// generic name→value map next to its strongly typed fields.
package tracker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RawIssue is one tracker record, flattened for normalization.
//
// Custom holds the string value of every custom field present on the issue,
// keyed by field name. Fields whose value is an option object contribute its
// "value" member; plain string fields contribute the string itself.
type RawIssue struct {
	ID          string
	Key         string
	Link        string
	Summary     string
	Description string
	Status      string // current workflow state name, the time bucket
	Components  []string
	Labels      []string
	Custom      map[string]string
}

// SearchQuery builds the JQL filter selecting roadmap initiatives.
func SearchQuery(project, issueType string) string {
	return fmt.Sprintf("project = %s and issuetype = %q", project, issueType)
}

// searchResponse mirrors the paged search result envelope.
type searchResponse struct {
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
	Issues     []apiIssue `json:"issues"`
}

type apiIssue struct {
	ID     string          `json:"id"`
	Key    string          `json:"key"`
	Fields json.RawMessage `json:"fields"`
}

// apiFields covers the typed portion of the fields object. The same bytes are
// decoded a second time into a raw map to pick up custom fields whose names
// are only known at runtime.
type apiFields struct {
	Summary     string `json:"summary"`
	Description string `json:"description"`
	Status      struct {
		Name string `json:"name"`
	} `json:"status"`
	Components []struct {
		Name string `json:"name"`
	} `json:"components"`
	Labels []string `json:"labels"`
}

// flatten converts one API issue into a RawIssue.
func (i apiIssue) flatten(baseURL string) (RawIssue, error) {
	var f apiFields
	if err := json.Unmarshal(i.Fields, &f); err != nil {
		return RawIssue{}, fmt.Errorf("decode issue %s fields: %w", i.Key, err)
	}

	var rawFields map[string]json.RawMessage
	if err := json.Unmarshal(i.Fields, &rawFields); err != nil {
		return RawIssue{}, fmt.Errorf("decode issue %s custom fields: %w", i.Key, err)
	}

	raw := RawIssue{
		ID:          i.ID,
		Key:         i.Key,
		Link:        strings.TrimSuffix(baseURL, "/") + "/browse/" + i.Key,
		Summary:     f.Summary,
		Description: f.Description,
		Status:      f.Status.Name,
		Labels:      f.Labels,
		Custom:      make(map[string]string),
	}
	for _, c := range f.Components {
		raw.Components = append(raw.Components, c.Name)
	}
	for name, value := range rawFields {
		if s, ok := customValue(value); ok {
			raw.Custom[name] = s
		}
	}
	return raw, nil
}

// customValue extracts a comparable string from a custom field value: either
// a plain JSON string or an option object with a "value" member.
func customValue(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	var opt struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(raw, &opt); err == nil && opt.Value != "" {
		return opt.Value, true
	}
	return "", false
}
