package themes

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/marvus-creator/Malvyn/internal/model"
	"github.com/marvus-creator/Malvyn/internal/service"
)

// Theme defines the visual style for the TUI.
type Theme struct {
	Title         lipgloss.Style
	Subtitle      lipgloss.Style
	Normal        lipgloss.Style
	Bold          lipgloss.Style
	Selected      lipgloss.Style
	TabActive     lipgloss.Style
	TabInactive   lipgloss.Style
	StatusSuccess lipgloss.Style
	StatusWarning lipgloss.Style
	StatusError   lipgloss.Style
	StatusInfo    lipgloss.Style
	Income        lipgloss.Style
	Expense       lipgloss.Style
	Muted         lipgloss.Style
	Box           lipgloss.Style
	RoundedBox    lipgloss.Style
	CategoryIcon  lipgloss.Style
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Success       lipgloss.Color
	Warning       lipgloss.Color
	Error         lipgloss.Color
	Border        lipgloss.Color
	Foreground    lipgloss.Color
	MutedColor    lipgloss.Color
}

// Dark is the default dark theme.
var Dark = Theme{
	Primary:    lipgloss.Color("#10b981"),
	Secondary:  lipgloss.Color("#34d399"),
	Success:    lipgloss.Color("#10b981"),
	Warning:    lipgloss.Color("#f59e0b"),
	Error:      lipgloss.Color("#ef4444"),
	Border:     lipgloss.Color("#404040"),
	Foreground: lipgloss.Color("#fafafa"),
	MutedColor: lipgloss.Color("#737373"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#fafafa")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#10b981")).
		Foreground(lipgloss.Color("#1a1a1a")).
		Bold(true),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10b981")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#10b981")).
		Padding(0, 2),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")).
		Padding(0, 2),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	StatusWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#f59e0b")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ef4444")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#3b82f6")).
		Bold(true),

	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10b981")).
		Bold(true),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#fafafa")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#737373")),

	Box: lipgloss.NewStyle().
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#404040")).
		Padding(1, 2),
	CategoryIcon: lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center),
}

// Light is the light theme.
var Light = Theme{
	Primary:    lipgloss.Color("#059669"),
	Secondary:  lipgloss.Color("#10b981"),
	Success:    lipgloss.Color("#059669"),
	Warning:    lipgloss.Color("#d97706"),
	Error:      lipgloss.Color("#dc2626"),
	Border:     lipgloss.Color("#d4d4d4"),
	Foreground: lipgloss.Color("#171717"),
	MutedColor: lipgloss.Color("#a3a3a3"),

	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")).
		MarginBottom(1),
	Subtitle: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#525252")).
		MarginBottom(1),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#171717")),
	Bold: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#171717")),
	Selected: lipgloss.NewStyle().
		Background(lipgloss.Color("#059669")).
		Foreground(lipgloss.Color("#fafafa")).
		Bold(true),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#059669")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#059669")).
		Padding(0, 2),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")).
		Padding(0, 2),

	StatusSuccess: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#059669")).
		Bold(true),
	StatusWarning: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d97706")).
		Bold(true),
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#dc2626")).
		Bold(true),
	StatusInfo: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#2563eb")).
		Bold(true),

	Income: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#059669")).
		Bold(true),
	Expense: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#171717")),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color("#a3a3a3")),

	Box: lipgloss.NewStyle().
		Padding(1, 2),
	RoundedBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#d4d4d4")).
		Padding(1, 2),
	CategoryIcon: lipgloss.NewStyle().
		Width(3).
		Align(lipgloss.Center),
}

// ForTheme returns the style set matching a persisted theme preference.
func ForTheme(t service.Theme) Theme {
	if t == service.ThemeLight {
		return Light
	}
	return Dark
}

// CategoryIcons maps categories to emoji icons.
var CategoryIcons = map[model.Category]string{
	model.CategoryFood:          "🍕",
	model.CategoryTransport:     "🚗",
	model.CategoryEntertainment: "🎬",
	model.CategoryUtilities:     "💡",
	model.CategoryShopping:      "🛍️",
	model.CategoryHealth:        "💊",
	model.CategoryIncome:        "💵",
	model.CategoryOther:         "📦",
}

// GetCategoryIcon returns an icon for a category.
func GetCategoryIcon(category model.Category) string {
	if icon, ok := CategoryIcons[category]; ok {
		return icon
	}
	return "📦"
}
