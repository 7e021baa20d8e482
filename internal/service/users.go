package service

import "context"

// AssignableUser feeds assignment dropdowns: id plus a display name, which is
// the full name when set and the email otherwise.
type AssignableUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (svc *Service) ListAssignableUsers(ctx context.Context) ([]AssignableUser, error) {
	users, err := svc.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]AssignableUser, 0, len(users))
	for _, user := range users {
		name := user.FullName
		if name == "" {
			name = user.Email
		}
		out = append(out, AssignableUser{ID: user.ID, Name: name})
	}
	return out, nil
}
