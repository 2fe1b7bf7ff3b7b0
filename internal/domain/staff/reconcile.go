package staff

import (
	"sort"

	"github.com/fitbase/clubstaff/internal/backend"
)

// Reconcile собирает единый ростер из двух независимых источников:
// подтверждённых membership-записей и приглашений по клубам. Функция чистая
// и идемпотентная: каждый вызов строит результат с нуля.
//
// Правила слияния:
//   - один Employee на уникальный телефонный ключ;
//   - роль из membership активна, если is_active, иначе pending;
//   - приглашение добавляет pending-роль только если по этому клубу записи
//     ещё нет (membership всегда побеждает устаревшее приглашение);
//   - приглашения без membership-двойника образуют "призрака" — пустое имя,
//     pending, одна роль на каждый приглашённый клуб.
func Reconcile(members []backend.Member, invitationsByClub map[int64][]backend.Invitation) []Employee {
	out := make([]Employee, 0, len(members))
	byKey := make(map[string]int, len(members))

	for _, m := range members {
		key := IdentityKey(m.PhoneNumber)
		idx, ok := byKey[key]
		if !ok {
			out = append(out, Employee{
				IdentityKey: key,
				UserID:      m.ID,
				FirstName:   m.FirstName,
				LastName:    m.LastName,
				Phone:       m.PhoneNumber,
				Username:    m.Username,
				PhotoURL:    m.PhotoURL,
				CreatedAt:   m.CreatedAt,
			})
			idx = len(out) - 1
			byKey[key] = idx
		}
		e := &out[idx]
		for _, cr := range m.ClubsAndRoles {
			if _, exists := e.RoleIn(cr.ClubID); exists {
				continue
			}
			st := StatusPending
			if cr.IsActive {
				st = StatusActive
			}
			e.ClubRoles = append(e.ClubRoles, ClubRoleState{
				ClubID: cr.ClubID,
				Role:   ParseRole(cr.Role),
				Status: st,
				Origin: OriginMembership,
			})
			if !e.hasClub(cr.ClubID) {
				e.ClubIDs = append(e.ClubIDs, cr.ClubID)
			}
		}
	}

	// Порядок обхода map в Go случайный — фиксируем по club_id,
	// чтобы у призрака invitation_id был детерминированным.
	clubIDs := make([]int64, 0, len(invitationsByClub))
	for id := range invitationsByClub {
		clubIDs = append(clubIDs, id)
	}
	sort.Slice(clubIDs, func(i, j int) bool { return clubIDs[i] < clubIDs[j] })

	for _, clubID := range clubIDs {
		for _, inv := range invitationsByClub[clubID] {
			if !inv.Pending() {
				continue
			}
			key := IdentityKey(inv.PhoneNumber)
			idx, ok := byKey[key]
			if !ok {
				invID := inv.ID
				out = append(out, Employee{
					IdentityKey:  key,
					Phone:        inv.PhoneNumber,
					Status:       StatusPending,
					InvitationID: &invID,
					CreatedAt:    inv.CreatedAt,
				})
				idx = len(out) - 1
				byKey[key] = idx
			}
			e := &out[idx]
			if _, exists := e.RoleIn(inv.ClubID); exists {
				// по этому клубу уже есть состояние — приглашение устарело
				continue
			}
			invID := inv.ID
			e.ClubRoles = append(e.ClubRoles, ClubRoleState{
				ClubID:       inv.ClubID,
				Role:         ParseRole(inv.Role),
				Status:       StatusPending,
				Origin:       OriginInvitation,
				InvitationID: &invID,
			})
			if !e.hasClub(inv.ClubID) {
				e.ClubIDs = append(e.ClubIDs, inv.ClubID)
			}
		}
	}

	for i := range out {
		finalize(&out[i])
	}
	return out
}

// finalize пересчитывает производные поля агрегата.
func finalize(e *Employee) {
	e.PrimaryRole = RoleCoach
	e.Status = StatusPending
	for _, cr := range e.ClubRoles {
		if cr.Role.Priority() > e.PrimaryRole.Priority() {
			e.PrimaryRole = cr.Role
		}
		if cr.Status == StatusActive {
			e.Status = StatusActive
		}
	}
}
