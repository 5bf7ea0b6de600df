package dynamo

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/five82/dynotable/internal/attr"
	"github.com/five82/dynotable/internal/source"
)

// Options select the account, region and endpoint a Handle talks to.
type Options struct {
	Region   string
	Endpoint string // e.g. http://localhost:8000 for DynamoDB Local
	Profile  string
}

// defaultResetTimeout bounds credential and endpoint resolution while
// redialing.
const defaultResetTimeout = 30 * time.Second

// Handle scans DynamoDB tables.
type Handle struct {
	opts Options

	mu     sync.Mutex
	client dynamodb.ScanAPIClient
	http   *http.Client
	dial   func(ctx context.Context, opts Options, hc *http.Client) (dynamodb.ScanAPIClient, error)

	resetTimeout time.Duration // zero uses defaultResetTimeout
}

var _ source.Handle = (*Handle)(nil)

// Open resolves AWS credentials and builds a client.
func Open(ctx context.Context, opts Options) (*Handle, error) {
	h := &Handle{opts: opts, dial: dial}
	if err := h.connect(ctx); err != nil {
		return nil, err
	}
	return h, nil
}

func dial(ctx context.Context, opts Options, hc *http.Client) (dynamodb.ScanAPIClient, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithHTTPClient(hc)}
	if opts.Region != "" {
		loaders = append(loaders, awsconfig.WithRegion(opts.Region))
	}
	if opts.Profile != "" {
		loaders = append(loaders, awsconfig.WithSharedConfigProfile(opts.Profile))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(strings.TrimRight(opts.Endpoint, "/"))
		}
	}), nil
}

func (h *Handle) connect(ctx context.Context) error {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	hc := &http.Client{Transport: transport}
	client, err := h.dial(ctx, h.opts, hc)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.client, h.http = client, hc
	h.mu.Unlock()
	return nil
}

func (h *Handle) current() dynamodb.ScanAPIClient {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.client
}

// ResetConnection drops pooled connections and builds a new client. The
// redial gives up after the reset timeout and keeps the previous client.
func (h *Handle) ResetConnection() error {
	h.mu.Lock()
	old := h.http
	h.mu.Unlock()
	if old != nil {
		old.CloseIdleConnections()
	}

	timeout := h.resetTimeout
	if timeout <= 0 {
		timeout = defaultResetTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return h.connect(ctx)
}

func (h *Handle) scanRaw(ctx context.Context, table string) ([]map[string]types.AttributeValue, error) {
	if strings.TrimSpace(table) == "" {
		return nil, source.ErrNoTable
	}
	pages := dynamodb.NewScanPaginator(h.current(), &dynamodb.ScanInput{TableName: aws.String(table)})

	var items []map[string]types.AttributeValue
	for pages.HasMorePages() {
		out, err := pages.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		items = append(items, out.Items...)
	}
	return items, nil
}

// Scan reads every item of table, following pagination.
func (h *Handle) Scan(ctx context.Context, table string) ([]attr.Item, error) {
	raw, err := h.scanRaw(ctx, table)
	if err != nil {
		return nil, err
	}
	items := make([]attr.Item, len(raw))
	for i, m := range raw {
		items[i] = ItemFrom(m)
	}
	return items, nil
}

// ScanInto decodes every item of table into out. Record fields are matched
// by their json tags so the same records work with every source.
func (h *Handle) ScanInto(ctx context.Context, table string, out any) error {
	raw, err := h.scanRaw(ctx, table)
	if err != nil {
		return err
	}
	err = attributevalue.UnmarshalListOfMapsWithOptions(raw, out, func(o *attributevalue.DecoderOptions) {
		o.TagKey = "json"
	})
	if err != nil {
		return fmt.Errorf("decode %s: %w", table, err)
	}
	return nil
}

// ItemFrom converts a DynamoDB item.
func ItemFrom(m map[string]types.AttributeValue) attr.Item {
	item := make(attr.Item, len(m))
	for k, v := range m {
		item[k] = ValueFrom(v)
	}
	return item
}

// ValueFrom converts one DynamoDB attribute. Unknown members become Null.
func ValueFrom(av types.AttributeValue) attr.Value {
	switch v := av.(type) {
	case *types.AttributeValueMemberS:
		return attr.String(v.Value)
	case *types.AttributeValueMemberN:
		return attr.Number(v.Value)
	case *types.AttributeValueMemberBOOL:
		return attr.Bool(v.Value)
	case *types.AttributeValueMemberB:
		return attr.Binary(v.Value)
	case *types.AttributeValueMemberBS:
		return attr.BinarySet(v.Value)
	case *types.AttributeValueMemberNS:
		return attr.NumberSet(v.Value)
	case *types.AttributeValueMemberSS:
		return attr.StringSet(v.Value)
	case *types.AttributeValueMemberL:
		list := make([]attr.Value, len(v.Value))
		for i, e := range v.Value {
			list[i] = ValueFrom(e)
		}
		return attr.List(list)
	case *types.AttributeValueMemberM:
		return attr.Map(ItemFrom(v.Value))
	default:
		return attr.Null()
	}
}
