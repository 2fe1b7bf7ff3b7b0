package staff

import "github.com/fitbase/clubstaff/internal/backend"

type Action string

const (
	ActionChangeRole Action = "change_role"
	ActionRemove     Action = "remove"
)

// CanActOn — может ли актор с ролью actor в клубе выполнить action над
// участником с ролью target в том же клубе.
//
//	owner: всё, кроме действий над другим owner
//	admin: только удаление coach
//	coach: ничего
func CanActOn(actor, target Role, action Action) bool {
	switch actor {
	case RoleOwner:
		return target != RoleOwner
	case RoleAdmin:
		return action == ActionRemove && target == RoleCoach
	default:
		return false
	}
}

// EffectiveRole — роль актора в клубе с учётом флага is_owner: часть записей
// несёт owner только в нём, роль при этом может быть любой.
func EffectiveRole(cr backend.ClubWithRole) Role {
	if cr.IsOwner {
		return RoleOwner
	}
	return ParseRole(cr.Role)
}

// RoleInClub ищет роль актора в конкретном клубе по его списку клубов.
func RoleInClub(clubs []backend.ClubWithRole, clubID int64) (Role, bool) {
	for _, c := range clubs {
		if c.Club.ID == clubID {
			return EffectiveRole(c), true
		}
	}
	return "", false
}
