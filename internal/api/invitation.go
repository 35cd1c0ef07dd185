package api

import (
	"context"
	"net/http"
	"net/url"
)

// Invitation statuses.
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusDeclined = "declined"
)

// Invitation is a pending or resolved organization membership invite.
type Invitation struct {
	ID           string        `json:"id"`
	Owner        *User         `json:"owner,omitempty"`
	Email        string        `json:"email"`
	Organization *Organization `json:"organization,omitempty"`
	Status       string        `json:"status"`
	CreateTime   string        `json:"createTime"`
	UpdateTime   *string       `json:"updateTime,omitempty"`
}

// EntityID implements store identity.
func (i Invitation) EntityID() string { return i.ID }

// ListIncomingInvitations retrieves one page of invitations addressed to the
// current user.
func (c *Client) ListIncomingInvitations(ctx context.Context, opts ListOptions) (List[Invitation], error) {
	return fetchList[Invitation](ctx, c, "/v3/invitations/incoming", opts.values())
}

// ProbeIncomingInvitations retrieves refreshed totals for incoming
// invitations.
func (c *Client) ProbeIncomingInvitations(ctx context.Context, size int) (ProbeResult, error) {
	return c.fetchProbe(ctx, "/v3/invitations/incoming/probe", url.Values{}, size)
}

// ListOutgoingInvitations retrieves one page of invitations sent by the
// given organization.
func (c *Client) ListOutgoingInvitations(ctx context.Context, organizationID string, opts ListOptions) (List[Invitation], error) {
	if organizationID == "" {
		return List[Invitation]{}, validationError("organization ID is required")
	}
	values := opts.values()
	values.Set("organization_id", organizationID)
	return fetchList[Invitation](ctx, c, "/v3/invitations/outgoing", values)
}

// ProbeOutgoingInvitations retrieves refreshed totals for an organization's
// outgoing invitations.
func (c *Client) ProbeOutgoingInvitations(ctx context.Context, organizationID string, size int) (ProbeResult, error) {
	if organizationID == "" {
		return ProbeResult{}, validationError("organization ID is required")
	}
	values := url.Values{}
	values.Set("organization_id", organizationID)
	return c.fetchProbe(ctx, "/v3/invitations/outgoing/probe", values, size)
}

// CreateInvitations invites the given email addresses into an organization.
func (c *Client) CreateInvitations(ctx context.Context, organizationID string, emails []string) ([]Invitation, error) {
	if organizationID == "" {
		return nil, validationError("organization ID is required")
	}
	if len(emails) == 0 {
		return nil, validationError("at least one email is required")
	}
	body := struct {
		OrganizationID string   `json:"organizationId"`
		Emails         []string `json:"emails"`
	}{OrganizationID: organizationID, Emails: emails}
	var payload []Invitation
	if err := c.send(ctx, http.MethodPost, "/v3/invitations", body, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// AcceptInvitation accepts an incoming invitation.
func (c *Client) AcceptInvitation(ctx context.Context, id string) error {
	return c.invitationAction(ctx, id, "accept")
}

// DeclineInvitation declines an incoming invitation.
func (c *Client) DeclineInvitation(ctx context.Context, id string) error {
	return c.invitationAction(ctx, id, "decline")
}

// ResendInvitation re-sends an outgoing invitation email.
func (c *Client) ResendInvitation(ctx context.Context, id string) error {
	return c.invitationAction(ctx, id, "resend")
}

func (c *Client) invitationAction(ctx context.Context, id, action string) error {
	if id == "" {
		return validationError("invitation ID is required")
	}
	return c.send(ctx, http.MethodPost, "/v3/invitations/"+id+"/"+action, nil, nil)
}

// DeleteInvitation deletes an outgoing invitation.
func (c *Client) DeleteInvitation(ctx context.Context, id string) error {
	if id == "" {
		return validationError("invitation ID is required")
	}
	return c.send(ctx, http.MethodDelete, "/v3/invitations/"+id, nil, nil)
}
