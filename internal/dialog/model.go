package dialog

type State string

const (
	StateIdle State = "idle"

	// Приглашение сотрудника
	StateInvPhone   State = "inv_phone"   // ввод телефона
	StateInvRole    State = "inv_role"    // выбор роли
	StateInvClub    State = "inv_club"    // выбор клуба
	StateInvConfirm State = "inv_confirm"

	// Создание тарифа
	StateTarName     State = "tar_name"
	StateTarPrice    State = "tar_price"
	StateTarAccess   State = "tar_access"   // чекбоксы клуб/секция/группа
	StateTarSchedule State = "tar_schedule" // строки "День ЧЧ:ММ ЧЧ:ММ"
	StateTarValidity State = "tar_validity" // период действия
	StateTarConfirm  State = "tar_confirm"

	// Создание секции с группами
	StateSecClub    State = "sec_club"
	StateSecName    State = "sec_name"
	StateSecGroups  State = "sec_groups" // строки "Название;уровень;вместимость"
	StateSecConfirm State = "sec_confirm"
)

type Payload map[string]any

type Item struct {
	ChatID  int64
	State   State
	Payload Payload
}
