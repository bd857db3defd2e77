package kv

import "moneymaster-server/internal/config"

func openWithReload() (StoreCloser, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	return Open()
}
