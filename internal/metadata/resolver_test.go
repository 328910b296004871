package metadata_test

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-marketplace-indexer/internal/adapter"
	"github.com/feral-file/ff-marketplace-indexer/internal/domain"
	"github.com/feral-file/ff-marketplace-indexer/internal/logger"
	"github.com/feral-file/ff-marketplace-indexer/internal/metadata"
	"github.com/feral-file/ff-marketplace-indexer/internal/mocks"
	"github.com/feral-file/ff-marketplace-indexer/internal/uri"
)

func TestMain(m *testing.M) {
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const (
	contract = "0x00000000000000000000000000000000000000D1"
	owner    = "0x00000000000000000000000000000000000000aA"
)

type testResolverMocks struct {
	ctrl       *gomock.Controller
	chain      *mocks.MockChainReader
	httpClient *mocks.MockHTTPClient
	resolver   metadata.Resolver
}

func setupTestResolver(t *testing.T) *testResolverMocks {
	ctrl := gomock.NewController(t)

	tm := &testResolverMocks{
		ctrl:       ctrl,
		chain:      mocks.NewMockChainReader(ctrl),
		httpClient: mocks.NewMockHTTPClient(ctrl),
	}

	tm.resolver = metadata.NewResolver(
		metadata.Config{},
		tm.chain,
		tm.httpClient,
		adapter.NewJSON(),
		uri.NewGateways([]string{"https://ipfs.io"}, nil),
	)

	return tm
}

func tearDownTestResolver(tm *testResolverMocks) {
	tm.ctrl.Finish()
}

func TestResolve_ERC721FromIPFS(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()
	doc := `{"name":"Sunset","description":"A sunset","image":"ipfs://QmImage","attributes":[{"trait_type":"Color","value":"Orange"}]}`

	tm.chain.EXPECT().ERC721TokenURI(ctx, contract, "1").Return("ipfs://QmMeta/1", nil)
	tm.chain.EXPECT().ERC721OwnerOf(ctx, contract, "1").Return(owner, nil)
	tm.httpClient.EXPECT().GetBytes(ctx, "https://ipfs.io/ipfs/QmMeta/1").Return([]byte(doc), nil)

	md, err := tm.resolver.Resolve(ctx, contract, "1", false)
	require.NoError(t, err)

	assert.Equal(t, "ipfs://QmMeta/1", md.MetadataURI)
	assert.Equal(t, "Sunset", md.Name)
	assert.Equal(t, "A sunset", md.Description)
	assert.Equal(t, "https://ipfs.io/ipfs/QmImage", md.Image)
	assert.Equal(t, owner, md.Owner)
	assert.NotNil(t, md.Attributes)

	canonical, err := adapter.NewJSON().Canonicalize([]byte(doc))
	require.NoError(t, err)
	expected := sha256.Sum256(canonical)
	assert.Equal(t, expected[:], md.RawHash)
}

func TestResolve_ERC1155DataURIWithIDPlaceholder(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()
	encoded := base64.StdEncoding.EncodeToString([]byte(`{"name":"Edition"}`))

	tm.chain.EXPECT().ERC1155URI(ctx, contract, "5").Return("data:application/json;base64,"+encoded, nil)

	md, err := tm.resolver.Resolve(ctx, contract, "5", true)
	require.NoError(t, err)
	assert.Equal(t, "Edition", md.Name)
	assert.Empty(t, md.Owner)
}

func TestResolve_ERC1155FallsBackToDecimalID(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	tm.chain.EXPECT().ERC1155URI(ctx, contract, "26").Return("https://api.example.com/{id}.json", nil)
	gomock.InOrder(
		tm.httpClient.EXPECT().
			GetBytes(ctx, "https://api.example.com/000000000000000000000000000000000000000000000000000000000000001a.json").
			Return(nil, errors.New("unexpected status code 404")),
		tm.httpClient.EXPECT().
			GetBytes(ctx, "https://api.example.com/26.json").
			Return([]byte(`{"name":"Edition 26"}`), nil),
	)

	md, err := tm.resolver.Resolve(ctx, contract, "26", true)
	require.NoError(t, err)
	assert.Equal(t, "Edition 26", md.Name)
}

func TestResolve_PartialOnFailures(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	tm.chain.EXPECT().ERC721TokenURI(ctx, contract, "2").Return("https://api.example.com/2", nil)
	tm.chain.EXPECT().ERC721OwnerOf(ctx, contract, "2").Return("", errors.New("execution reverted"))
	tm.httpClient.EXPECT().GetBytes(ctx, "https://api.example.com/2").Return([]byte("not json"), nil)

	md, err := tm.resolver.Resolve(ctx, contract, "2", false)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/2", md.MetadataURI)
	assert.Empty(t, md.Name)
	assert.Empty(t, md.Owner)
	assert.Nil(t, md.RawHash)
}

func TestResolve_NoTokenURI(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	tm.chain.EXPECT().ERC721TokenURI(ctx, contract, "3").Return("", errors.New("execution reverted"))
	tm.chain.EXPECT().ERC721OwnerOf(ctx, contract, "3").Return(owner, nil)

	md, err := tm.resolver.Resolve(ctx, contract, "3", false)
	require.NoError(t, err)
	assert.Empty(t, md.MetadataURI)
	assert.Equal(t, owner, md.Owner)
}

func TestResolve_ContextCanceled(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tm.chain.EXPECT().ERC721TokenURI(ctx, contract, "4").Return("", context.Canceled)

	md, err := tm.resolver.Resolve(ctx, contract, "4", false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, md)
}

func TestCollectionInfo_CachedPerContract(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	tm.chain.EXPECT().ContractName(ctx, contract).Return("Sunsets", nil).Times(1)
	tm.chain.EXPECT().ContractSymbol(ctx, contract).Return("SUN", nil).Times(1)

	info, err := tm.resolver.CollectionInfo(ctx, contract, false)
	require.NoError(t, err)
	assert.Equal(t, "Sunsets", info.Name)
	assert.Equal(t, "SUN", info.Symbol)
	assert.Equal(t, domain.ContractTypeERC721, info.ContractType)

	again, err := tm.resolver.CollectionInfo(ctx, contract, false)
	require.NoError(t, err)
	assert.Equal(t, info, again)
}

func TestCollectionInfo_ERC1155DefaultsName(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	tm.chain.EXPECT().ContractName(ctx, contract).Return("", errors.New("execution reverted"))
	tm.chain.EXPECT().ContractSymbol(ctx, contract).Return("", errors.New("execution reverted"))

	info, err := tm.resolver.CollectionInfo(ctx, contract, true)
	require.NoError(t, err)
	assert.Equal(t, domain.DEFAULT_COLLECTION_NAME, info.Name)
	assert.Empty(t, info.Symbol)
	assert.Equal(t, domain.ContractTypeERC1155, info.ContractType)
}

func TestCollectionInfo_FailedLookupIsNotCached(t *testing.T) {
	tm := setupTestResolver(t)
	defer tearDownTestResolver(tm)

	ctx := context.Background()

	gomock.InOrder(
		tm.chain.EXPECT().ContractName(ctx, contract).Return("", errors.New("429 too many requests")),
		tm.chain.EXPECT().ContractName(ctx, contract).Return("Sunsets", nil),
	)
	tm.chain.EXPECT().ContractSymbol(ctx, contract).Return("SUN", nil).Times(2)

	first, err := tm.resolver.CollectionInfo(ctx, contract, false)
	require.NoError(t, err)
	assert.Equal(t, domain.DEFAULT_COLLECTION_NAME, first.Name)

	second, err := tm.resolver.CollectionInfo(ctx, contract, false)
	require.NoError(t, err)
	assert.Equal(t, "Sunsets", second.Name)
	assert.Equal(t, "SUN", second.Symbol)

	cached, err := tm.resolver.CollectionInfo(ctx, contract, false)
	require.NoError(t, err)
	assert.Equal(t, second, cached)
}
