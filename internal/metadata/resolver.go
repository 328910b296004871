package metadata

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/providers/ethereum"
	"github.com/feral-file/ff-marketplace-indexer/internal/uri"
)

// Resolver resolves token metadata and collection info for NFTs seen on the marketplace.
// Every step is best effort: failures leave fields empty and only context
// cancellation is reported as an error.
//
//go:generate mockgen -source=resolver.go -destination=../mocks/metadata_resolver.go -package=mocks -mock_names=Resolver=MockMetadataResolver
type Resolver interface {
	// Resolve fetches the metadata document of a token and, for ERC-721, its owner
	Resolve(ctx context.Context, contractAddress, tokenID string, isERC1155 bool) (*domain.TokenMetadata, error)

	// CollectionInfo returns the cached name and symbol of a contract
	CollectionInfo(ctx context.Context, contractAddress string, isERC1155 bool) (*domain.CollectionInfo, error)
}

// Config holds resolver tuning
type Config struct {
	CollectionCacheSize int
	CollectionCacheTTL  time.Duration
}

type resolver struct {
	chain       ethereum.ChainReader
	httpClient  adapter.HTTPClient
	json        adapter.JSON
	gateways    *uri.Gateways
	collections *expirable.LRU[string, domain.CollectionInfo]
}

// NewResolver creates a metadata resolver
func NewResolver(cfg Config, chain ethereum.ChainReader, httpClient adapter.HTTPClient, json adapter.JSON, gateways *uri.Gateways) Resolver {
	if cfg.CollectionCacheSize <= 0 {
		cfg.CollectionCacheSize = 1024
	}
	if cfg.CollectionCacheTTL <= 0 {
		cfg.CollectionCacheTTL = time.Hour
	}
	return &resolver{
		chain:       chain,
		httpClient:  httpClient,
		json:        json,
		gateways:    gateways,
		collections: expirable.NewLRU[string, domain.CollectionInfo](cfg.CollectionCacheSize, nil, cfg.CollectionCacheTTL),
	}
}

func (r *resolver) Resolve(ctx context.Context, contractAddress, tokenID string, isERC1155 bool) (*domain.TokenMetadata, error) {
	md := &domain.TokenMetadata{
		ContractAddress: contractAddress,
		TokenID:         tokenID,
		IsERC1155:       isERC1155,
	}
	fields := []zap.Field{
		zap.String("contract", contractAddress),
		zap.String("token_id", tokenID),
	}

	var err error
	if isERC1155 {
		md.MetadataURI, err = r.chain.ERC1155URI(ctx, contractAddress, tokenID)
	} else {
		md.MetadataURI, err = r.chain.ERC721TokenURI(ctx, contractAddress, tokenID)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.WarnCtx(ctx, "Failed to fetch token URI", append(fields, zap.Error(err))...)
	}

	if !isERC1155 {
		owner, err := r.chain.ERC721OwnerOf(ctx, contractAddress, tokenID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.WarnCtx(ctx, "Failed to fetch token owner", append(fields, zap.Error(err))...)
		} else {
			md.Owner = owner
		}
	}

	if strings.TrimSpace(md.MetadataURI) == "" {
		return md, nil
	}

	candidates := []string{md.MetadataURI}
	if isERC1155 {
		candidates = uri.SubstituteTokenID(md.MetadataURI, tokenID)
	}

	body, err := r.fetchDocument(ctx, candidates)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.WarnCtx(ctx, "Failed to fetch token metadata", append(fields, zap.String("uri", md.MetadataURI), zap.Error(err))...)
		return md, nil
	}

	if err := r.normalize(md, body); err != nil {
		logger.WarnCtx(ctx, "Failed to parse token metadata", append(fields, zap.Error(err))...)
	}

	return md, nil
}

// fetchDocument returns the first document that could be retrieved from the candidate URIs
func (r *resolver) fetchDocument(ctx context.Context, candidates []string) ([]byte, error) {
	var errs []error
	for _, candidate := range candidates {
		if uri.IsDataURI(candidate) {
			body, err := uri.DecodeDataURI(candidate)
			if err == nil {
				return body, nil
			}
			errs = append(errs, err)
			continue
		}

		urls := r.gateways.CandidateURLs(candidate)
		if len(urls) == 0 {
			errs = append(errs, fmt.Errorf("unsupported URI scheme: %s", candidate))
			continue
		}

		body, err := r.fetchFirst(ctx, urls)
		if err == nil {
			return body, nil
		}
		errs = append(errs, err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, errors.Join(errs...)
}

// fetchFirst queries all gateway URLs in parallel and returns the first successful body
func (r *resolver) fetchFirst(ctx context.Context, urls []string) ([]byte, error) {
	if len(urls) == 1 {
		return r.httpClient.GetBytes(ctx, urls[0])
	}

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		body []byte
		err  error
	}
	results := make(chan result, len(urls))
	for _, u := range urls {
		go func(u string) {
			body, err := r.httpClient.GetBytes(fetchCtx, u)
			results <- result{body: body, err: err}
		}(u)
	}

	var errs []error
	for range urls {
		res := <-results
		if res.err == nil {
			return res.body, nil
		}
		errs = append(errs, res.err)
	}
	return nil, fmt.Errorf("failed to fetch from all gateways: %w", errors.Join(errs...))
}

// normalize extracts the OpenSea metadata standard fields and hashes the canonical document
func (r *resolver) normalize(md *domain.TokenMetadata, body []byte) error {
	var raw map[string]interface{}
	if err := r.json.Unmarshal(body, &raw); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	md.Raw = raw

	if name, ok := raw["name"].(string); ok {
		md.Name = strings.TrimSpace(name)
	}
	if desc, ok := raw["description"].(string); ok {
		md.Description = desc
	}
	image, _ := raw["image"].(string)
	if image == "" {
		image, _ = raw["image_url"].(string)
	}
	if image != "" {
		md.Image = r.gateways.ToGateway(image)
	}
	if attrs, ok := raw["attributes"]; ok {
		md.Attributes = attrs
	}

	canonical, err := r.json.Canonicalize(body)
	if err != nil {
		return fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	hash := sha256.Sum256(canonical)
	md.RawHash = hash[:]

	return nil
}

func (r *resolver) CollectionInfo(ctx context.Context, contractAddress string, isERC1155 bool) (*domain.CollectionInfo, error) {
	key := strings.ToLower(contractAddress)
	if info, ok := r.collections.Get(key); ok {
		return &info, nil
	}

	info := domain.CollectionInfo{
		ContractAddress: contractAddress,
		ContractType:    domain.ContractTypeFor(isERC1155),
	}

	name, nameErr := r.chain.ContractName(ctx, contractAddress)
	if nameErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.DebugCtx(ctx, "Contract has no name", zap.String("contract", contractAddress), zap.Error(nameErr))
	}
	info.Name = strings.TrimSpace(name)
	if info.Name == "" {
		info.Name = domain.DEFAULT_COLLECTION_NAME
	}

	symbol, symbolErr := r.chain.ContractSymbol(ctx, contractAddress)
	if symbolErr != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		logger.DebugCtx(ctx, "Contract has no symbol", zap.String("contract", contractAddress), zap.Error(symbolErr))
	}
	info.Symbol = strings.TrimSpace(symbol)

	// failed lookups are retried on the next call
	if nameErr == nil && symbolErr == nil {
		r.collections.Add(key, info)
	}
	return &info, nil
}
