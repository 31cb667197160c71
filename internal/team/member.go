package team

import "time"

// State derives the invitation state.
func (m *Member) State() State {
	switch {
	case m.IsActive && m.AcceptedAt == nil:
		return StateInvited
	case m.IsActive:
		return StateAccepted
	case m.AcceptedAt == nil:
		return StateDeclined
	default:
		return StateRemoved
	}
}

// Accept moves an open invitation to ACCEPTED. Only the invitee may accept.
func (m *Member) Accept(userID string, now time.Time) error {
	if err := m.checkRespond(userID); err != nil {
		return err
	}
	m.AcceptedAt = &now
	return nil
}

// Decline moves an open invitation to DECLINED. Only the invitee may decline.
func (m *Member) Decline(userID string) error {
	if err := m.checkRespond(userID); err != nil {
		return err
	}
	m.IsActive = false
	return nil
}

func (m *Member) checkRespond(userID string) error {
	if m.UserID != userID {
		return ErrNotInvitee
	}
	if m.State() != StateInvited {
		return ErrInvitationClosed
	}
	return nil
}

// Deactivate removes a member or withdraws a pending invitation.
func (m *Member) Deactivate() error {
	if !m.IsActive {
		return ErrNotFound
	}
	m.IsActive = false
	return nil
}

// EffectivePermissions returns what the member may currently do.
// Pending, declined and removed memberships grant nothing.
func (m *Member) EffectivePermissions() PermissionSet {
	if m.State() != StateAccepted {
		return PermissionSet{}
	}
	return EffectivePermissions(m.Role, m.Permissions)
}
