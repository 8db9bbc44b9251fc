package store

// Countdown is a user-created event with a target timestamp and display
// metadata. Date is a local-zone datetime string ("2006-01-02T15:04");
// parsing is the time engine's job, the store treats it as opaque.
type Countdown struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	Icon          string `json:"icon,omitempty"`
	Color         string `json:"color"`
	Background    string `json:"background,omitempty"`
	IsHijri       bool   `json:"isHijri,omitempty"`
	Description   string `json:"description,omitempty"`
	IsPinned      bool   `json:"isPinned,omitempty"`
	ReminderTime  int    `json:"reminderTime,omitempty"` // minutes before event
	Shares        int    `json:"shares,omitempty"`
	Views         int    `json:"views,omitempty"`
	ShowTimeSince bool   `json:"showTimeSince,omitempty"`
}

// NewCountdown is the input shape for Store.Add: a Countdown before an
// identity has been assigned.
type NewCountdown struct {
	Title         string
	Date          string
	Icon          string
	Color         string
	Background    string
	IsHijri       bool
	Description   string
	IsPinned      bool
	ReminderTime  int
	Shares        int
	Views         int
	ShowTimeSince bool
}

// DefaultColors is the fixed palette new countdowns draw from.
var DefaultColors = []string{
	"#3B82F6", // blue
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#F97316", // orange
	"#10B981", // emerald
}

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

type CalendarType string

const (
	CalendarGregorian CalendarType = "gregorian"
	CalendarHijri     CalendarType = "hijri"
)

type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeSystem Theme = "system"
)

// Settings is the flat preference record.
type Settings struct {
	Language             Language     `json:"language"`
	DefaultCalendar      CalendarType `json:"defaultCalendar"`
	Theme                Theme        `json:"theme"`
	MinimalMode          bool         `json:"minimalMode,omitempty"`
	NotificationsEnabled bool         `json:"notificationsEnabled,omitempty"`
	SoundEnabled         bool         `json:"soundEnabled,omitempty"`
}

// DefaultSettings returns the first-run preferences.
func DefaultSettings() Settings {
	return Settings{
		Language:        LanguageEnglish,
		DefaultCalendar: CalendarGregorian,
		Theme:           ThemeDark,
	}
}
