package update

import (
	"context"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/levelup/internal/config"
	"github.com/sandeepkv93/levelup/internal/model"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/storage"
	"github.com/sandeepkv93/levelup/internal/store"
	"github.com/sirupsen/logrus"
)

type View string

const (
	ViewDashboard    View = "Dashboard"
	ViewTasks        View = "Tasks"
	ViewSchedule     View = "Schedule"
	ViewJournal      View = "Journal"
	ViewAchievements View = "Achievements"
	ViewSettings     View = "Settings"
	ViewReports      View = "Reports"
	ViewRegister     View = "Register"
	ViewCheckIn      View = "Check-in"
	ViewReflect      View = "Reflect"
)

// Timer ids. Re-scheduling an id replaces the pending timer.
const (
	timerPopup  = "popup"
	timerPrompt = "reflection-prompt"
	timerWallet = "wallet"
	timerMint   = "mint"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Dashboard    string
	Tasks        string
	Schedule     string
	Journal      string
	Achievements string
	Settings     string
	Reports      string
	Help         string
	Quit         string
}

type Model struct {
	CurrentView   View
	Tasks         TasksState
	Schedule      ScheduleState
	Journal       JournalState
	Achievements  AchievementsState
	Reports       ReportsState
	Settings      SettingsState
	Register      RegisterState
	CheckIn       CheckInForm
	Reflect       ReflectFlow
	Dashboard     DashboardState
	Popup         *CompletionPopup
	Profile       Profile
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	services    *store.Services
	Scheduler   *scheduler.Engine
	wallet      WalletConnector
	cfg         config.RuntimeConfig
	log         logrus.FieldLogger
	now         func() time.Time
	rng         *rand.Rand
	ctx         context.Context
	profilePath string

	// Bubble components used for rich TUI controls
	taskList      list.Model
	reportTable   table.Model
	commandInput  textinput.Model
	titleInput    textinput.Model
	nameInput     textinput.Model
	journalArea   textarea.Model
	xpProgress    progress.Model
	walletSpinner spinner.Model
	helpModel     help.Model
	quoteViewport viewport.Model
}

type TasksState struct {
	Cursor int
	Field  string
	Sort   model.TaskSort
}

type ScheduleState struct {
	Events   []model.ScheduleEvent
	Selected time.Time
	Cursor   int
}

type JournalState struct {
	Entries  *model.Journal
	Selected time.Time
	Editing  bool
}

type AchievementsState struct {
	Filter model.AchievementFilter
	Cursor int
	Form   AchievementForm
}

type AchievementForm struct {
	Active   bool
	Focus    int
	Inputs   []textinput.Model
	Category int
	Icon     int
	Err      string
}

type ReportsState struct {
	Range model.ReportRange
}

type SettingsState struct {
	Cursor      int
	EditingName bool
}

type RegisterStep int

const (
	RegisterWallet RegisterStep = iota + 1
	RegisterEducation
)

type WalletStatus string

const (
	WalletDisconnected WalletStatus = "disconnected"
	WalletConnecting   WalletStatus = "connecting"
	WalletConnected    WalletStatus = "connected"
)

type RegisterState struct {
	Step      RegisterStep
	Wallet    WalletStatus
	Education int
}

type CheckInForm struct {
	Values model.StructuredCheckIn
	Field  int
}

type ReflectFlow struct {
	Step    int
	Cursor  int
	Answers model.IndirectCheckIn
	TagIdx  int
	Done    bool
	Quote   string
}

type DashboardState struct {
	PromptVisible bool
	Minting       bool
	MintSuccess   bool
}

type CompletionPopup struct {
	Title string
	XP    int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// TimerFiredMsg carries a timer from the scheduler engine.
type TimerFiredMsg struct {
	Timer scheduler.Timer
}

// DayChangedMsg is sent by the day rollover job.
type DayChangedMsg struct{}

// Deps wires the model to its stores and runtime collaborators.
type Deps struct {
	Services    *store.Services
	Scheduler   *scheduler.Engine
	Wallet      WalletConnector
	Config      config.RuntimeConfig
	Logger      logrus.FieldLogger
	Now         func() time.Time
	Rand        *rand.Rand
	ProfilePath string
}

func NewModel(deps Deps) Model {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Rand == nil {
		deps.Rand = rand.New(rand.NewSource(deps.Now().UnixNano()))
	}
	if deps.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		deps.Logger = l
	}
	if deps.Wallet == nil {
		deps.Wallet = MockWallet{Installed: deps.Config.WalletInstalled}
	}
	if deps.Services == nil {
		// Nothing to persist to: run against an in-memory repository.
		svc, err := store.Open(context.Background(), storage.NewMemoryRepository(), store.Options{Logger: deps.Logger, Now: deps.Now})
		if err != nil {
			deps.Logger.WithError(err).Error("open in-memory stores")
		}
		deps.Services = svc
	}
	today := model.StartOfDay(deps.Now())

	m := Model{
		Tasks:        TasksState{Sort: model.SortByDueDate},
		Schedule:     ScheduleState{Events: model.SeedScheduleEvents(), Selected: today},
		Journal:      JournalState{Entries: model.SeedJournal(today), Selected: today},
		Achievements: AchievementsState{Filter: model.FilterAll},
		Reports:      ReportsState{Range: model.RangeWeek},
		Register:     RegisterState{Step: RegisterWallet, Wallet: WalletDisconnected},
		CheckIn:      CheckInForm{Values: model.DefaultStructuredCheckIn()},
		Profile:      DefaultProfile(),
		Keys: GlobalKeyMap{
			Dashboard:    "1",
			Tasks:        "2",
			Schedule:     "3",
			Journal:      "4",
			Achievements: "5",
			Settings:     "6",
			Reports:      "7",
			Help:         "?",
			Quit:         "q",
		},
		services:    deps.Services,
		Scheduler:   deps.Scheduler,
		wallet:      deps.Wallet,
		cfg:         deps.Config,
		log:         deps.Logger,
		now:         deps.Now,
		rng:         deps.Rand,
		ctx:         context.Background(),
		profilePath: strings.TrimSpace(deps.ProfilePath),
	}
	if m.profilePath != "" {
		if p, err := loadProfile(m.profilePath); err == nil {
			m.Profile = p
		} else {
			m.log.WithError(err).Warn("profile unreadable, using defaults")
		}
	}
	m.CurrentView = m.Profile.DefaultView
	if !m.Profile.Registered {
		m.CurrentView = ViewRegister
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}
