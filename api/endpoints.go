package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// UpdateProfile sends a partial profile update. Fields are passed through as
// the backend expects them (snake_case keys).
func (c *Client) UpdateProfile(ctx context.Context, fields map[string]any) (map[string]any, error) {
	var out map[string]any
	if err := c.doJSON(ctx, http.MethodPut, "/auth/profile", fields, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardSummary is an exported method of Client.
func (c *Client) DashboardSummary(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Patient records.

// CreatePatient is an exported method of Client.
func (c *Client) CreatePatient(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/patients/", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPatients is an exported method of Client.
func (c *Client) ListPatients(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/patients/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatient is an exported method of Client.
func (c *Client) GetPatient(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PatientUpdate carries the two editable clinical fields of a patient record.
type PatientUpdate struct {
	DisabilityReport string `json:"disability_report"`
	CareNotes        string `json:"care_notes"`
}

// UpdatePatient is an exported method of Client.
func (c *Client) UpdatePatient(ctx context.Context, id string, update PatientUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "/patients/"+url.PathEscape(id), update, nil)
}

// PatientAIContext is an exported method of Client.
func (c *Client) PatientAIContext(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+url.PathEscape(id)+"/ai-context", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListPatientDocuments is an exported method of Client.
func (c *Client) ListPatientDocuments(ctx context.Context, id string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/patients/"+url.PathEscape(id)+"/documents", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeletePatientDocument is an exported method of Client.
func (c *Client) DeletePatientDocument(ctx context.Context, docID string) error {
	return c.doJSON(ctx, http.MethodDelete, "/patients/documents/"+url.PathEscape(docID), nil, nil)
}

// Clinical sessions.

// ListSessions filters by patient and optionally by professional.
func (c *Client) ListSessions(ctx context.Context, patientID, professionalID string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)
	if professionalID != "" {
		q.Set("professional_id", professionalID)
	}

	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSession is an exported method of Client.
func (c *Client) CreateSession(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/sessions/", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSession is an exported method of Client.
func (c *Client) UpdateSession(ctx context.Context, id string, data map[string]any) error {
	return c.doJSON(ctx, http.MethodPut, "/sessions/"+url.PathEscape(id), data, nil)
}

// DeleteSession is an exported method of Client.
func (c *Client) DeleteSession(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/sessions/"+url.PathEscape(id), nil, nil)
}

// Reports.

// ListReports is an exported method of Client.
func (c *Client) ListReports(ctx context.Context, patientID string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)

	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/reports/list?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReport is an exported method of Client.
func (c *Client) CreateReport(ctx context.Context, data map[string]any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/reports", data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MasterReport aggregates a patient's record over a date range. Dates use the
// backend's YYYY-MM-DD form.
func (c *Client) MasterReport(ctx context.Context, patientID, startDate, endDate string) (json.RawMessage, error) {
	q := url.Values{}
	q.Set("patient_id", patientID)
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)

	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/reports/master?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Collaborations.

// InviteCollaborator is an exported method of Client.
func (c *Client) InviteCollaborator(ctx context.Context, patientID, email string) error {
	body := map[string]string{"patient_id": patientID, "email": email}
	return c.doJSON(ctx, http.MethodPost, "/collaborations/invite", body, nil)
}

// PendingCollaborations is an exported method of Client.
func (c *Client) PendingCollaborations(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/collaborations/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RespondCollaboration accepts "ACCEPTED" or "REJECTED".
func (c *Client) RespondCollaboration(ctx context.Context, id, status string) error {
	body := map[string]string{"status": status}
	return c.doJSON(ctx, http.MethodPut, "/collaborations/"+url.PathEscape(id)+"/respond", body, nil)
}

// DeleteCollaboration is an exported method of Client.
func (c *Client) DeleteCollaboration(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/collaborations/"+url.PathEscape(id), nil, nil)
}

// Admin review.

// AdminDashboard is an exported method of Client.
func (c *Client) AdminDashboard(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PendingUsers is an exported method of Client.
func (c *Client) PendingUsers(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/admin/users/pending", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReviewUser approves or rejects a pending registration. status is "APPROVED"
// or "REJECTED"; the review endpoint itself expects the action verbs APPROVE
// and REJECT, so the status is translated here.
func (c *Client) ReviewUser(ctx context.Context, userID, status, reason string) error {
	action := "REJECT"
	if status == "APPROVED" {
		action = "APPROVE"
	}
	body := map[string]string{"action": action, "reject_reason": reason}
	return c.doJSON(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(userID)+"/review", body, nil)
}

// Support tickets.

// CreateSupportTicket is an exported method of Client.
func (c *Client) CreateSupportTicket(ctx context.Context, subject, message string) error {
	body := map[string]string{"subject": subject, "message": message}
	return c.doJSON(ctx, http.MethodPost, "/support/", body, nil)
}

// ListSupportTickets is an exported method of Client.
func (c *Client) ListSupportTickets(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/support/", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplySupportTicket is an exported method of Client.
func (c *Client) ReplySupportTicket(ctx context.Context, id, response string) error {
	body := map[string]string{"response": response}
	return c.doJSON(ctx, http.MethodPut, "/support/"+url.PathEscape(id)+"/reply", body, nil)
}
