package update

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/levelup/internal/scheduler"
	"github.com/sandeepkv93/levelup/internal/views"
)

func (m Model) handleRegisterKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == m.Keys.Quit {
		return m.quit()
	}
	if key == m.Keys.Help {
		m.HelpVisible = !m.HelpVisible
		return m, nil
	}

	switch m.Register.Step {
	case RegisterWallet:
		switch key {
		case "c", "enter":
			return m.startWalletConnect()
		}
	case RegisterEducation:
		switch key {
		case "j", "k", "up", "down":
			m.Register.Education = moveCursor(m.Register.Education, key, len(EducationTypes))
		case "enter":
			return m.completeRegistration(), nil
		case "esc":
			m.Register.Step = RegisterWallet
		}
	}
	return m, nil
}

func (m Model) startWalletConnect() (Model, tea.Cmd) {
	if m.Register.Wallet == WalletConnecting {
		return m, nil
	}
	if !m.wallet.Detected() {
		m.toast("MetaMask Not Found", "MetaMask Not Found: install a wallet extension to continue", true)
		return m, nil
	}
	m.Register.Wallet = WalletConnecting
	m.Status = StatusBar{Text: "connecting wallet..."}
	m.after(timerWallet, scheduler.KindWalletConnect, m.cfg.WalletDelay)
	return m, m.walletSpinner.Tick
}

func (m Model) finishWalletConnect() Model {
	if m.Register.Wallet != WalletConnecting {
		return m
	}
	addr, err := m.wallet.Connect(m.context())
	if err != nil {
		m.log.WithError(err).Warn("wallet connect failed")
		m.Register.Wallet = WalletDisconnected
		m.toast("Connection Failed", "Connection Failed: "+err.Error(), true)
		return m
	}
	m.Register.Wallet = WalletConnected
	m.Register.Step = RegisterEducation
	m.Profile.WalletAddress = addr
	m.toast("Wallet Connected", "Wallet Connected: "+ShortAddress(addr), false)
	return m
}

func (m Model) completeRegistration() Model {
	m.Profile.EducationType = EducationTypes[clamp(m.Register.Education, 0, len(EducationTypes)-1)]
	m.Profile.Registered = true
	if err := m.persistProfile(); err != nil {
		m.log.WithError(err).Error("persist profile failed")
		m.toast("Error", "could not save registration: "+err.Error(), true)
		m.Profile.Registered = false
		return m
	}
	m.log.WithField("education", m.Profile.EducationType).Info("registration complete")
	m.CurrentView = m.Profile.DefaultView
	m.toast("Registration", "Welcome aboard, "+m.Profile.Name, false)
	m.schedulePromptIfNeeded()
	return m
}

func (m Model) renderRegisterView() string {
	return views.RenderRegisterPanel(views.RegisterPanelData{
		Step:           int(m.Register.Step),
		WalletDetected: m.wallet.Detected(),
		Status:         string(m.Register.Wallet),
		Address:        ShortAddress(m.Profile.WalletAddress),
		SpinnerView:    m.walletSpinner.View(),
		Education:      EducationTypes,
		Cursor:         m.Register.Education,
	})
}
