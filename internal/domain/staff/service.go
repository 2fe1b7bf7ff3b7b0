package staff

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/fitbase/clubstaff/internal/backend"
	"github.com/fitbase/clubstaff/internal/infra/metrics"
)

var (
	ErrNotAllowed = errors.New("action not allowed for this role")
	ErrNotFound   = errors.New("employee not found")
	ErrNoClubRole = errors.New("no role state for this club")
)

// Service держит текущий ростер и проводит мутации через бэкенд.
// Локальное состояние меняется только после успешного ответа бэкенда.
type Service struct {
	api      backend.Client
	log      *slog.Logger
	validate *validator.Validate

	mu     sync.Mutex
	roster []Employee
	clubs  []backend.ClubWithRole
}

func NewService(api backend.Client, log *slog.Logger) *Service {
	v := validator.New()
	// телефон: плюс, цифры, пробелы, скобки и дефисы; страна не нормализуется
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		digits := 0
		for i, r := range s {
			switch {
			case r >= '0' && r <= '9':
				digits++
			case r == '+' && i == 0:
			case r == ' ' || r == '(' || r == ')' || r == '-':
			default:
				return false
			}
		}
		return digits >= 10 && digits <= 15
	})
	return &Service{api: api, log: log, validate: v}
}

// LoadRoster пересобирает ростер: membership одним запросом, приглашения —
// веером по клубу на горутину. Падение одного клуба не валит остальные:
// такой клуб считается пустым, ошибка логируется и попадает в метрику.
func (s *Service) LoadRoster(ctx context.Context) ([]Employee, error) {
	clubs, err := s.api.ClubsWithRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("load clubs: %w", err)
	}
	members, err := s.api.StaffMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staff members: %w", err)
	}

	invs := make(map[int64][]backend.Invitation, len(clubs))
	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, c := range clubs {
		wg.Add(1)
		go func(clubID int64) {
			defer wg.Done()
			list, err := s.api.ClubInvitations(ctx, clubID)
			if err != nil {
				s.log.Error("invitations fetch failed, club treated as empty",
					"club_id", clubID, "err", err)
				metrics.InvitationFetchFailures.Inc()
				return
			}
			mu.Lock()
			invs[clubID] = list
			mu.Unlock()
		}(c.Club.ID)
	}
	wg.Wait()

	roster := Reconcile(members, invs)
	metrics.ReconcileTotal.Inc()

	s.mu.Lock()
	s.roster = roster
	s.clubs = clubs
	s.mu.Unlock()
	return roster, nil
}

func (s *Service) Roster() []Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Employee, len(s.roster))
	copy(out, s.roster)
	return out
}

func (s *Service) Clubs() []backend.ClubWithRole {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]backend.ClubWithRole, len(s.clubs))
	copy(out, s.clubs)
	return out
}

// Find ищет сотрудника по identity key в текущем ростере.
func (s *Service) Find(key string) (Employee, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.roster {
		if e.IdentityKey == key {
			return e, true
		}
	}
	return Employee{}, false
}

// ActorRoleIn — роль текущего пользователя бота в клубе (с учётом is_owner).
func (s *Service) ActorRoleIn(clubID int64) (Role, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RoleInClub(s.clubs, clubID)
}

type InviteForm struct {
	Phone  string `validate:"required,phone"`
	Role   string `validate:"required,oneof=owner admin coach"`
	ClubID int64  `validate:"required,gt=0"`
}

// Invite валидирует форму и создаёт приглашение. Ростер не трогаем:
// pending-роль появится при следующей пересборке.
func (s *Service) Invite(ctx context.Context, form InviteForm) error {
	if err := s.validate.Struct(form); err != nil {
		return fmt.Errorf("invite form: %w", err)
	}
	_, err := s.api.CreateInvitation(ctx, form.ClubID, backend.CreateInvitationRequest{
		PhoneNumber: form.Phone,
		Role:        form.Role,
	})
	if err != nil {
		metrics.MutationFailures.Inc()
		return fmt.Errorf("create invitation: %w", err)
	}
	return nil
}

// ChangeRole меняет роль сотрудника в клубе. Авторизация проверяется локально
// по роли актора и повторно бэкендом.
func (s *Service) ChangeRole(ctx context.Context, clubID int64, key string, newRole Role) error {
	emp, ok := s.Find(key)
	if !ok {
		return ErrNotFound
	}
	state, ok := emp.RoleIn(clubID)
	if !ok {
		return ErrNoClubRole
	}
	actor, ok := s.ActorRoleIn(clubID)
	if !ok || !CanActOn(actor, state.Role, ActionChangeRole) {
		return ErrNotAllowed
	}
	if err := s.api.ChangeRole(ctx, clubID, emp.UserID, string(newRole)); err != nil {
		metrics.MutationFailures.Inc()
		return fmt.Errorf("change role: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.roster {
		if s.roster[i].IdentityKey != key {
			continue
		}
		for j := range s.roster[i].ClubRoles {
			if s.roster[i].ClubRoles[j].ClubID == clubID {
				s.roster[i].ClubRoles[j].Role = newRole
			}
		}
		finalize(&s.roster[i])
	}
	return nil
}

// RemoveMember убирает сотрудника из клуба.
func (s *Service) RemoveMember(ctx context.Context, clubID int64, key string) error {
	emp, ok := s.Find(key)
	if !ok {
		return ErrNotFound
	}
	state, ok := emp.RoleIn(clubID)
	if !ok {
		return ErrNoClubRole
	}
	actor, ok := s.ActorRoleIn(clubID)
	if !ok || !CanActOn(actor, state.Role, ActionRemove) {
		return ErrNotAllowed
	}
	if err := s.api.RemoveMember(ctx, clubID, emp.UserID); err != nil {
		metrics.MutationFailures.Inc()
		return fmt.Errorf("remove member: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.roster {
		if s.roster[i].IdentityKey != key {
			continue
		}
		s.roster[i].ClubRoles = dropClub(s.roster[i].ClubRoles, clubID)
		s.roster[i].ClubIDs = dropID(s.roster[i].ClubIDs, clubID)
		finalize(&s.roster[i])
	}
	return nil
}

// CancelInvitation удаляет приглашение на бэкенде и оптимистично выкидывает
// соответствующую роль из удерживаемого ростера по invitation_id. Сам
// сотрудник (даже оставшийся без ролей призрак) исчезнет из списка только
// при следующей пересборке.
func (s *Service) CancelInvitation(ctx context.Context, invitationID int64) error {
	if err := s.api.DeleteInvitation(ctx, invitationID); err != nil {
		metrics.MutationFailures.Inc()
		return fmt.Errorf("delete invitation: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.roster {
		changed := false
		kept := s.roster[i].ClubRoles[:0]
		for _, cr := range s.roster[i].ClubRoles {
			if cr.InvitationID != nil && *cr.InvitationID == invitationID {
				s.roster[i].ClubIDs = dropID(s.roster[i].ClubIDs, cr.ClubID)
				changed = true
				continue
			}
			kept = append(kept, cr)
		}
		if changed {
			s.roster[i].ClubRoles = kept
			finalize(&s.roster[i])
		}
	}
	return nil
}

func dropClub(states []ClubRoleState, clubID int64) []ClubRoleState {
	out := states[:0]
	for _, cr := range states {
		if cr.ClubID != clubID {
			out = append(out, cr)
		}
	}
	return out
}

func dropID(ids []int64, id int64) []int64 {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
