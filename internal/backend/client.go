package backend

import "context"

// Client — всё, что бот просит у бэкенда. Ретраев и бэкоффа нет намеренно:
// транспортная политика — зона ответственности бэкенда и его SLA.
type Client interface {
	StaffMembers(ctx context.Context) ([]Member, error)
	ClubInvitations(ctx context.Context, clubID int64) ([]Invitation, error)
	CreateInvitation(ctx context.Context, clubID int64, req CreateInvitationRequest) (*Invitation, error)
	DeleteInvitation(ctx context.Context, id int64) error
	ChangeRole(ctx context.Context, clubID, userID int64, role string) error
	RemoveMember(ctx context.Context, clubID, userID int64) error
	ClubsWithRole(ctx context.Context) ([]ClubWithRole, error)

	Sections(ctx context.Context) ([]Section, error)
	CreateSection(ctx context.Context, req CreateSectionRequest) (*Section, error)
	CreateGroup(ctx context.Context, sectionID int64, req CreateGroupRequest) (*Group, error)
	GenerateLessons(ctx context.Context, groupID int64, req GenerateLessonsRequest) error
	CreateTariff(ctx context.Context, req CreateTariffRequest) error
}
