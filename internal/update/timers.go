package update

import (
	"context"

	"github.com/sandeepkv93/levelup/internal/scheduler"
)

func (m *Model) schedulePromptIfNeeded() {
	if !m.Profile.Registered || m.services.CheckIns.CheckedInOn(m.now()) {
		return
	}
	m.after(timerPrompt, scheduler.KindReflectionPrompt, m.cfg.PromptDelay)
}

func (m Model) onTimer(t scheduler.Timer) Model {
	switch t.Kind {
	case scheduler.KindPopupDismiss:
		m.Popup = nil
	case scheduler.KindReflectionPrompt:
		if !m.services.CheckIns.CheckedInOn(m.now()) && m.Profile.Registered {
			m.Dashboard.PromptVisible = true
		}
	case scheduler.KindWalletConnect:
		m = m.finishWalletConnect()
	case scheduler.KindMintComplete:
		if m.Dashboard.Minting {
			m.Dashboard.Minting = false
			m.Dashboard.MintSuccess = true
			m.toast("Mint", "Character NFT minted", false)
		}
	default:
		m.log.WithField("kind", t.Kind).Warn("unknown timer kind")
	}
	return m
}

func (m Model) onDayChanged() Model {
	if m.services.Reflections.RefreshDay() {
		m.log.Info("day rolled over")
	}
	m.Dashboard.PromptVisible = false
	m.schedulePromptIfNeeded()
	return m
}

func (m Model) context() context.Context {
	if m.ctx == nil {
		return context.Background()
	}
	return m.ctx
}
