package lib

import (
	"context"
	"log"
	"strings"

	"github.com/algorand/go-algorand-sdk/v2/client/v2/algod"
	sdktypes "github.com/algorand/go-algorand-sdk/v2/types"
)

// AssetLedger is the slice of the Algorand node surface the ticket lifecycle
// depends on. It answers asset-existence, holding and address questions; it
// never signs or submits anything.
type AssetLedger interface {
	AssetExists(ctx context.Context, assetID uint64) (bool, error)
	AccountHoldsAsset(ctx context.Context, address string, assetID uint64) (bool, error)
	IsValidAddress(address string) bool
}

type AlgodLedger struct {
	client *algod.Client
}

func NewAlgodLedger(url string, token string) (*AlgodLedger, error) {
	client, err := algod.MakeClient(url, token)
	if err != nil {
		log.Printf("Error creating algod client: %s\n", err.Error())
		return nil, err
	}
	return &AlgodLedger{client: client}, nil
}

func (l *AlgodLedger) AssetExists(ctx context.Context, assetID uint64) (bool, error) {
	_, err := l.client.GetAssetByID(assetID).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		log.Printf("Error looking up asset [%d]: %s\n", assetID, err.Error())
		return false, err
	}
	return true, nil
}

func (l *AlgodLedger) AccountHoldsAsset(ctx context.Context, address string, assetID uint64) (bool, error) {
	info, err := l.client.AccountAssetInformation(address, assetID).Do(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		log.Printf("Error looking up asset [%d] for account [%s]: %s\n", assetID, address, err.Error())
		return false, err
	}
	return info.AssetHolding.Amount > 0, nil
}

func (l *AlgodLedger) IsValidAddress(address string) bool {
	_, err := sdktypes.DecodeAddress(address)
	return err == nil
}

// algod reports missing assets and holdings as plain HTTP 404s.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "does not exist") || strings.Contains(msg, "not found")
}
