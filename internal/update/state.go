package update

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandeepkv93/levelup/internal/model"
)

// EducationTypes are the registration choices, in display order.
var EducationTypes = []string{"jee", "neet", "college", "school", "other"}

// Profile is the registration and preference record kept in the state file.
type Profile struct {
	Registered          bool            `json:"registered"`
	WalletAddress       string          `json:"wallet_address,omitempty"`
	EducationType       string          `json:"education_type,omitempty"`
	Name                string          `json:"name"`
	Character           model.Character `json:"character"`
	ShowCompletedTasks  bool            `json:"show_completed_tasks"`
	ShowXPNotifications bool            `json:"show_xp_notifications"`
	DefaultView         View            `json:"default_view"`
}

func DefaultProfile() Profile {
	return Profile{
		Name:                "Player",
		Character:           model.CharacterCyberpunk,
		ShowCompletedTasks:  true,
		ShowXPNotifications: true,
		DefaultView:         ViewDashboard,
	}
}

// DefaultViews are the views a profile may open on.
var DefaultViews = []View{ViewDashboard, ViewTasks, ViewSchedule, ViewJournal, ViewAchievements, ViewReports}

func (m *Model) persistProfile() error {
	if strings.TrimSpace(m.profilePath) == "" {
		return nil
	}
	dir := filepath.Dir(m.profilePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(m.Profile, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.profilePath + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, m.profilePath)
}

// LoadProfile reads the state file. A missing or blank file yields the defaults.
func LoadProfile(path string) (Profile, error) {
	return loadProfile(path)
}

func loadProfile(path string) (Profile, error) {
	out := DefaultProfile()
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return out, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return DefaultProfile(), err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return DefaultProfile(), err
	}
	if !out.Character.IsValid() {
		out.Character = model.CharacterCyberpunk
	}
	if !isDefaultView(out.DefaultView) {
		out.DefaultView = ViewDashboard
	}
	return out, nil
}

func isDefaultView(v View) bool {
	for _, d := range DefaultViews {
		if d == v {
			return true
		}
	}
	return false
}
