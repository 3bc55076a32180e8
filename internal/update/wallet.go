package update

import (
	"context"
	"errors"
)

var (
	ErrWalletNotFound = errors.New("wallet: no wallet extension detected")
	ErrWalletRejected = errors.New("wallet: connection rejected")
)

// WalletConnector is the wallet extension collaborator used during registration.
type WalletConnector interface {
	Detected() bool
	Connect(ctx context.Context) (string, error)
}

// MockWallet stands in for a browser wallet extension.
type MockWallet struct {
	Installed bool
	Address   string
	Reject    bool
}

const mockWalletAddress = "0x12345678901234567890123456789012345abcd"

func (w MockWallet) Detected() bool { return w.Installed }

func (w MockWallet) Connect(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !w.Installed {
		return "", ErrWalletNotFound
	}
	if w.Reject {
		return "", ErrWalletRejected
	}
	if w.Address != "" {
		return w.Address, nil
	}
	return mockWalletAddress, nil
}

// ShortAddress renders 0x1234...abcd.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}
