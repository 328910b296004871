package decoder

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
)

// SkipReason labels why a log was not decoded
type SkipReason string

const (
	SkipRemoved   SkipReason = "removed"
	SkipNoTopics  SkipReason = "no_topics"
	SkipUnknown   SkipReason = "unknown_event"
	SkipMalformed SkipReason = "malformed"
)

// SkipRecorder is notified of logs that were skipped instead of decoded
type SkipRecorder interface {
	RecordDecodeSkip(reason string)
}

// Decoder turns raw marketplace logs into domain events
type Decoder struct {
	abi     abi.ABI
	skipped SkipRecorder
}

// New returns a decoder for the marketplace ABI. skipped may be nil.
func New(skipped SkipRecorder) *Decoder {
	return &Decoder{abi: MarketplaceABI, skipped: skipped}
}

// Decode returns the decoded event or nil when the log is not a well-formed marketplace event
func (d *Decoder) Decode(vLog types.Log) *domain.DecodedEvent {
	if vLog.Removed {
		d.skip(SkipRemoved, vLog)
		return nil
	}
	if len(vLog.Topics) == 0 {
		d.skip(SkipNoTopics, vLog)
		return nil
	}

	event, err := d.abi.EventByID(vLog.Topics[0])
	if err != nil {
		d.skip(SkipUnknown, vLog)
		return nil
	}

	var indexed abi.Arguments
	for _, input := range event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(vLog.Topics)-1 != len(indexed) {
		d.skip(SkipMalformed, vLog)
		return nil
	}

	args := make(map[string]interface{}, len(event.Inputs))
	if err := event.Inputs.NonIndexed().UnpackIntoMap(args, vLog.Data); err != nil {
		d.skip(SkipMalformed, vLog)
		return nil
	}
	if err := abi.ParseTopicsIntoMap(args, indexed, vLog.Topics[1:]); err != nil {
		d.skip(SkipMalformed, vLog)
		return nil
	}

	return &domain.DecodedEvent{
		Name:            domain.EventName(event.Name),
		Args:            args,
		ContractAddress: vLog.Address.Hex(),
		TxHash:          vLog.TxHash.Hex(),
		BlockNumber:     vLog.BlockNumber,
		BlockHash:       vLog.BlockHash.Hex(),
		LogIndex:        vLog.Index,
	}
}

func (d *Decoder) skip(reason SkipReason, vLog types.Log) {
	logger.Debug("Skipping marketplace log",
		zap.String("reason", string(reason)),
		zap.String("tx_hash", vLog.TxHash.Hex()),
		zap.Uint("log_index", vLog.Index))
	if d.skipped != nil {
		d.skipped.RecordDecodeSkip(string(reason))
	}
}
