// Package decodertest builds raw marketplace logs for tests.
package decodertest

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/feral-file/ff-marketplace-indexer/internal/decoder"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

// Log encodes a marketplace event with its arguments in ABI order
func Log(contract common.Address, name domain.EventName, block uint64, index uint, args ...interface{}) types.Log {
	event, ok := decoder.MarketplaceABI.Events[string(name)]
	if !ok {
		panic(fmt.Sprintf("unknown event %s", name))
	}
	if len(args) != len(event.Inputs) {
		panic(fmt.Sprintf("%s takes %d args, got %d", name, len(event.Inputs), len(args)))
	}

	topics := []common.Hash{event.ID}
	var data []interface{}
	for i, input := range event.Inputs {
		if !input.Indexed {
			data = append(data, args[i])
			continue
		}
		switch v := args[i].(type) {
		case *big.Int:
			topics = append(topics, common.BigToHash(v))
		case common.Address:
			topics = append(topics, common.BytesToHash(v.Bytes()))
		default:
			panic(fmt.Sprintf("unsupported indexed arg %T", v))
		}
	}

	packed, err := event.Inputs.NonIndexed().Pack(data...)
	if err != nil {
		panic(err)
	}

	return types.Log{
		Address:     contract,
		Topics:      topics,
		Data:        packed,
		BlockNumber: block,
		Index:       index,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block*1000 + uint64(index))),
		BlockHash:   common.BigToHash(new(big.Int).SetUint64(block)),
	}
}

// Wei is shorthand for big.Int literals
func Wei(v int64) *big.Int {
	return big.NewInt(v)
}

// WeiString parses a decimal wei string
func WeiString(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("invalid wei " + s)
	}
	return v
}
