package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/techstock/inventory/internal/models"
	"github.com/techstock/inventory/internal/repository"
	"github.com/techstock/inventory/pkg/config"
	"github.com/techstock/inventory/pkg/database"
	"github.com/techstock/inventory/pkg/logger"
)

// Expected CSV header names, as exported by Azure Resource Graph.
const (
	colName             = "Name"
	colType             = "Type"
	colKind             = "kind"
	colLocation         = "Location"
	colSubscription     = "Subscription"
	colResourceGroup    = "Resource group"
	colTags             = "Tags"
	colExtendedLocation = "extendedLocation"
)

type importer struct {
	resources repository.ResourceRepository
	subs      repository.SubscriptionRepository
	groups    repository.ResourceGroupRepository
	apps      repository.ApplicationRepository

	subCache map[string]int64
	rgCache  map[string]int64
	appCache map[string]int64
}

func main() {
	csvPath := flag.String("csv", "datasets/resources.csv", "path to the resource export CSV")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	imp := &importer{
		resources: repository.NewResourceRepository(db),
		subs:      repository.NewSubscriptionRepository(db),
		groups:    repository.NewResourceGroupRepository(db),
		apps:      repository.NewApplicationRepository(db),
		subCache:  map[string]int64{},
		rgCache:   map[string]int64{},
		appCache:  map[string]int64{},
	}

	count, err := imp.run(ctx, *csvPath)
	if err != nil {
		log.Fatal("import failed", zap.Error(err))
	}
	log.Info("import completed", zap.Int("records", count))
}

func (imp *importer) run(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	cols := map[string]int{}
	for i, name := range header {
		cols[name] = i
	}
	for _, required := range []string{colName, colType, colLocation, colSubscription, colResourceGroup, colTags} {
		if _, ok := cols[required]; !ok {
			return 0, fmt.Errorf("missing column %q", required)
		}
	}

	count := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read record %d: %w", count+1, err)
		}

		if err := imp.importRecord(ctx, cols, record); err != nil {
			return count, fmt.Errorf("record %d (%s): %w", count+1, field(cols, record, colName), err)
		}
		count++
		if count%100 == 0 {
			logger.L().Info("import progress", zap.Int("records", count))
		}
	}
	return count, nil
}

func (imp *importer) importRecord(ctx context.Context, cols map[string]int, record []string) error {
	tags, blob, err := parseTags(field(cols, record, colTags))
	if err != nil {
		return fmt.Errorf("parse tags: %w", err)
	}

	subID, err := imp.subscriptionID(ctx, field(cols, record, colSubscription))
	if err != nil {
		return err
	}
	rgID, err := imp.resourceGroupID(ctx, field(cols, record, colResourceGroup), subID)
	if err != nil {
		return err
	}

	res := &models.Resource{
		Name:             field(cols, record, colName),
		Type:             field(cols, record, colType),
		Kind:             optional(field(cols, record, colKind)),
		Location:         field(cols, record, colLocation),
		SubscriptionID:   &subID,
		ResourceGroupID:  &rgID,
		TagsJSON:         datatypes.JSON(blob),
		ExtendedLocation: optional(field(cols, record, colExtendedLocation)),
		Vendor:           optionalTag(tags, "Vendor"),
		Environment:      optionalTag(tags, "Environment"),
		Provisioner:      optionalTag(tags, "Provisioner"),
	}
	if err := imp.resources.CreateWithTags(ctx, res, tags); err != nil {
		return err
	}

	// The AppID tag ties a resource to an application record.
	if appCode, ok := tags["AppID"]; ok && appCode != "" {
		appID, err := imp.applicationID(ctx, appCode, tags)
		if err != nil {
			return err
		}
		if err := imp.resources.LinkApplication(ctx, res.ID, appID, "uses"); err != nil {
			return err
		}
	}
	return nil
}

func (imp *importer) subscriptionID(ctx context.Context, name string) (int64, error) {
	if id, ok := imp.subCache[name]; ok {
		return id, nil
	}
	existing, err := imp.subs.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		imp.subCache[name] = existing.ID
		return existing.ID, nil
	}
	sub := &models.Subscription{Name: name}
	if err := imp.subs.Create(ctx, sub); err != nil {
		return 0, err
	}
	imp.subCache[name] = sub.ID
	return sub.ID, nil
}

func (imp *importer) resourceGroupID(ctx context.Context, name string, subscriptionID int64) (int64, error) {
	key := fmt.Sprintf("%s|%d", name, subscriptionID)
	if id, ok := imp.rgCache[key]; ok {
		return id, nil
	}
	existing, err := imp.groups.FindByNameInSubscription(ctx, name, subscriptionID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		imp.rgCache[key] = existing.ID
		return existing.ID, nil
	}
	rg := &models.ResourceGroup{Name: name, SubscriptionID: subscriptionID}
	if err := imp.groups.Create(ctx, rg); err != nil {
		return 0, err
	}
	imp.rgCache[key] = rg.ID
	return rg.ID, nil
}

func (imp *importer) applicationID(ctx context.Context, code string, tags map[string]string) (int64, error) {
	if id, ok := imp.appCache[code]; ok {
		return id, nil
	}
	existing, err := imp.apps.FindByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		imp.appCache[code] = existing.ID
		return existing.ID, nil
	}
	app := &models.Application{
		Code:       &code,
		Name:       optionalTag(tags, "AppName"),
		OwnerEmail: firstTag(tags, "AdminName", "AdminName1", "AdminName2"),
	}
	if err := imp.apps.Create(ctx, app); err != nil {
		return 0, err
	}
	imp.appCache[code] = app.ID
	return app.ID, nil
}

// parseTags decodes the exported tag cell. "null" and empty cells mean no
// tags; non-string values keep their raw JSON text as the tag value.
func parseTags(raw string) (map[string]string, []byte, error) {
	if raw == "" || raw == "null" {
		return map[string]string{}, []byte("{}"), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, nil, err
	}

	tags := make(map[string]string, len(obj))
	for key, val := range obj {
		if string(val) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(val, &s); err == nil {
			tags[key] = s
			continue
		}
		tags[key] = string(val)
	}

	blob, err := json.Marshal(tags)
	if err != nil {
		return nil, nil, err
	}
	return tags, blob, nil
}

func field(cols map[string]int, record []string, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return record[idx]
}

func optional(s string) *string {
	if s == "" || s == "null" {
		return nil
	}
	return &s
}

func optionalTag(tags map[string]string, key string) *string {
	if v, ok := tags[key]; ok && v != "" {
		return &v
	}
	return nil
}

func firstTag(tags map[string]string, keys ...string) *string {
	for _, key := range keys {
		if v := optionalTag(tags, key); v != nil {
			return v
		}
	}
	return nil
}
