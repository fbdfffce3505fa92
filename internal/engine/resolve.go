package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DoyleJ11/undercover/internal/llm"
	"github.com/DoyleJ11/undercover/internal/words"
)

// resolveWord picks the round's pair. The order is: the chosen pack through
// the ledger; otherwise the word source, then its archive when the quota is
// spent; then the built-in pack through the ledger; then the fixed fallback.
// It always returns a usable pair.
func (e *Engine) resolveWord(ctx context.Context, cfg Config) (words.Pair, WordOrigin, string) {
	// history writes should land even if the caller gave up waiting
	ledgerCtx := context.WithoutCancel(ctx)

	if cfg.PackID != "" {
		pack, err := e.packs.Pack(ctx, cfg.PackID)
		if err == nil {
			pair, err := e.ledger.UnusedWord(ledgerCtx, pack.ID, pack.Words)
			if err == nil {
				return pair, OriginPack, pack.ID
			}
			e.log.Warn("pack unusable, falling back", zap.String("pack", pack.ID), zap.Error(err))
		} else {
			e.log.Warn("pack lookup failed, falling back", zap.String("pack", cfg.PackID), zap.Error(err))
		}
	} else if e.source != nil {
		pair, err := e.source.RequestWordPair(ctx, cfg.Mode)
		if err == nil && pair.Valid() {
			return pair, OriginGenerated, ""
		}
		e.log.Warn("word source failed, falling back", zap.Error(err))

		if arch, ok := e.source.(Archiver); ok && errors.Is(err, llm.ErrQuota) {
			pack := arch.Archive(cfg.Mode)
			if pair, err := e.ledger.UnusedWord(ledgerCtx, pack.ID, pack.Words); err == nil {
				return pair, OriginArchive, pack.ID
			}
		}
	}

	packID := words.BuiltinPackID(cfg.Mode)
	pair, err := e.ledger.UnusedWord(ledgerCtx, packID, words.BuiltinPack(cfg.Mode).Words)
	if err == nil {
		return pair, OriginStatic, packID
	}
	e.log.Error("built-in pack unusable", zap.String("pack", packID), zap.Error(err))
	return words.Fallback(cfg.Mode), OriginFallback, packID
}
