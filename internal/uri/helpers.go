package uri

import (
	"encoding/base64"
	"fmt"
	"math/big"
	"net/url"
	"strings"

	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
)

// Gateways rewrites content-addressed URIs onto HTTP gateways
type Gateways struct {
	IPFS    []string
	Arweave []string
}

// NewGateways returns Gateways with trailing slashes trimmed and defaults applied to empty lists
func NewGateways(ipfs, arweave []string) *Gateways {
	g := &Gateways{
		IPFS:    trimAll(ipfs),
		Arweave: trimAll(arweave),
	}
	if len(g.IPFS) == 0 {
		g.IPFS = []string{domain.DEFAULT_IPFS_GATEWAY}
	}
	if len(g.Arweave) == 0 {
		g.Arweave = []string{domain.DEFAULT_ARWEAVE_GATEWAY}
	}
	return g
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimRight(strings.TrimSpace(s), "/"); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// CandidateURLs returns the HTTP URLs to try for uri, in gateway order.
// HTTP URLs carrying an /ipfs/ path are re-routed through the configured gateways
// so private or rate limited gateways baked into metadata are avoided.
// Unsupported schemes return nil.
func (g *Gateways) CandidateURLs(uri string) []string {
	uri = strings.TrimSpace(uri)

	if path, ok := ipfsPath(uri); ok {
		urls := make([]string, 0, len(g.IPFS))
		for _, gw := range g.IPFS {
			urls = append(urls, fmt.Sprintf("%s/ipfs/%s", gw, path))
		}
		return urls
	}

	if txID, ok := strings.CutPrefix(uri, "ar://"); ok {
		urls := make([]string, 0, len(g.Arweave))
		for _, gw := range g.Arweave {
			urls = append(urls, fmt.Sprintf("%s/%s", gw, txID))
		}
		return urls
	}

	if IsHTTP(uri) {
		return []string{uri}
	}

	return nil
}

// ToGateway returns the first candidate URL for uri, or uri itself when none applies
func (g *Gateways) ToGateway(uri string) string {
	if urls := g.CandidateURLs(uri); len(urls) > 0 {
		return urls[0]
	}
	return uri
}

// ipfsPath extracts "<cid>/<path>" from ipfs:// URIs and HTTP gateway URLs
func ipfsPath(uri string) (string, bool) {
	if path, ok := strings.CutPrefix(uri, "ipfs://"); ok {
		path = strings.TrimPrefix(path, "ipfs/")
		return path, path != ""
	}
	if IsHTTP(uri) {
		if _, path, ok := strings.Cut(uri, "/ipfs/"); ok && path != "" {
			return path, true
		}
	}
	return "", false
}

// IsHTTP reports whether uri is an http(s) URL
func IsHTTP(uri string) bool {
	return strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://")
}

// IsDataURI reports whether uri is an RFC 2397 data URI
func IsDataURI(uri string) bool {
	return strings.HasPrefix(uri, "data:")
}

// DecodeDataURI returns the payload of a data URI, decoding base64 or percent-encoding
func DecodeDataURI(uri string) ([]byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return nil, fmt.Errorf("invalid data URI")
	}

	header, data, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("invalid data URI format")
	}

	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			// Some contracts emit unpadded payloads
			decoded, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(data, "="))
			if err != nil {
				return nil, fmt.Errorf("failed to decode base64: %w", err)
			}
		}
		return decoded, nil
	}

	unescaped, err := url.PathUnescape(data)
	if err != nil {
		// Raw JSON payloads commonly carry unescaped '%'
		return []byte(data), nil //nolint:nilerr
	}
	return []byte(unescaped), nil
}

// SubstituteTokenID expands the ERC-1155 {id} placeholder.
// It returns the 64 character lowercase hex form first, as the standard requires,
// followed by the decimal form that many contracts use instead.
func SubstituteTokenID(uri, tokenID string) []string {
	if !strings.Contains(uri, "{id}") {
		return []string{uri}
	}

	id, ok := new(big.Int).SetString(tokenID, 10)
	if !ok {
		return []string{strings.ReplaceAll(uri, "{id}", tokenID)}
	}

	return []string{
		strings.ReplaceAll(uri, "{id}", fmt.Sprintf("%064x", id)),
		strings.ReplaceAll(uri, "{id}", id.String()),
	}
}
