package portfolio_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/locale"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

func newModule(t *testing.T) (*portfolio.Module, *testsupport.Store) {
	t.Helper()

	store, err := testsupport.NewStore(context.Background())
	if err != nil {
		t.Fatalf("reference store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	backend := httptest.NewServer(testsupport.NewServer(store))
	t.Cleanup(backend.Close)

	cfg := portfolio.DefaultConfig()
	cfg.BaseURL = backend.URL

	module, err := portfolio.New(cfg)
	if err != nil {
		t.Fatalf("portfolio.New: %v", err)
	}
	return module, store
}

func TestModuleSaveDerivesSlugThroughBackend(t *testing.T) {
	module, _ := newModule(t)
	ctx := context.Background()

	session, err := editor.NewSession(catalog.KindProject)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := session.SetLocalized("title", locale.Vietnamese, "Test"); err != nil {
		t.Fatalf("set title: %v", err)
	}

	saved, err := module.Client().Save(ctx, session)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if session.IsNew() {
		t.Fatal("expected session to carry the persisted id after save")
	}

	slug := locale.Normalize(saved["slug"])
	if slug.EN != "test" {
		t.Fatalf("expected derived EN slug %q, got %q", "test", slug.EN)
	}
	if slug.VI != "test" {
		t.Fatalf("expected derived VI slug %q, got %q", "test", slug.VI)
	}
}

func TestModuleMultipartUpdateRoundTrip(t *testing.T) {
	module, _ := newModule(t)
	ctx := context.Background()

	create, err := editor.NewSession(catalog.KindProject)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if err := create.SetLocalized("title", locale.Vietnamese, "Dự án"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if _, err := module.Client().Save(ctx, create); err != nil {
		t.Fatalf("create: %v", err)
	}
	id := create.EntityID()

	record, err := module.Client().Get(ctx, catalog.KindProject, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	update, err := editor.NewSessionFromRecord(catalog.KindProject, record)
	if err != nil {
		t.Fatalf("session from record: %v", err)
	}
	if err := update.SetLocalized("title", locale.English, "Project"); err != nil {
		t.Fatalf("set EN title: %v", err)
	}
	if err := update.Attach("thumbnail", "cover.png", []byte("png-bytes")); err != nil {
		t.Fatalf("attach: %v", err)
	}

	saved, err := module.Client().Save(ctx, update)
	if err != nil {
		t.Fatalf("multipart save: %v", err)
	}

	title := locale.Normalize(saved["title"])
	if title.VI != "Dự án" || title.EN != "Project" {
		t.Fatalf("expected both title slots after update, got %+v", title)
	}
	thumbnail, _ := saved["thumbnail"].(string)
	if !strings.HasSuffix(thumbnail, "cover.png") {
		t.Fatalf("expected stored upload path ending in cover.png, got %q", thumbnail)
	}
	if update.EntityID() != id {
		t.Fatalf("expected update to keep id %d, got %d", id, update.EntityID())
	}
}

func TestModuleFetchSiteNormalizesStoredShapes(t *testing.T) {
	module, store := newModule(t)
	ctx := context.Background()

	// Seed directly through the store the way a legacy backend would:
	// one object-shaped value, one JSON string, one bare string.
	seeds := []map[string]any{
		{"name": map[string]any{"vi": "Go", "en": "Go"}, "category": map[string]any{"vi": "Hệ thống"}, "sort_order": 1},
		{"name": `{"vi":"Cơ sở dữ liệu","en":"Databases"}`, "category": map[string]any{"en": "Backend"}, "sort_order": 2},
		{"name": "Docker", "category": map[string]any{}, "sort_order": 3},
	}
	for _, seed := range seeds {
		if _, err := store.Create(ctx, catalog.KindSkill, seed); err != nil {
			t.Fatalf("seed skill: %v", err)
		}
	}

	site, err := module.Client().FetchSite(ctx)
	if err != nil {
		t.Fatalf("fetch site: %v", err)
	}
	if len(site.Skills) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(site.Skills))
	}

	if got := site.Skills[1].Name.Resolve(locale.Vietnamese); got != "Cơ sở dữ liệu" {
		t.Fatalf("expected JSON-string name normalized, got %q", got)
	}
	if got := site.Skills[2].Name.Resolve(locale.English); got != "Docker" {
		t.Fatalf("expected bare string to fall back to VI slot, got %q", got)
	}

	groups := catalog.GroupSkills(site.Skills)
	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[len(groups)-1].Key != catalog.UncategorizedGroup {
		t.Fatalf("expected empty category grouped last as %q, got %q", catalog.UncategorizedGroup, groups[len(groups)-1].Key)
	}
}

func TestModuleDeleteRequiresConfirmation(t *testing.T) {
	module, store := newModule(t)
	ctx := context.Background()

	record, err := store.Create(ctx, catalog.KindProject, map[string]any{"title": map[string]any{"vi": "Xoá"}})
	if err != nil {
		t.Fatalf("seed project: %v", err)
	}
	id, _ := record["id"].(int64)

	err = module.Client().Delete(ctx, catalog.KindProject, id, func() bool { return false })
	if err != portfolio.ErrDeleteNotConfirmed {
		t.Fatalf("expected ErrDeleteNotConfirmed, got %v", err)
	}
	if _, err := store.Get(ctx, catalog.KindProject, id); err != nil {
		t.Fatalf("expected record to survive declined delete: %v", err)
	}

	if err := module.Client().Delete(ctx, catalog.KindProject, id, func() bool { return true }); err != nil {
		t.Fatalf("confirmed delete: %v", err)
	}
	if _, err := store.Get(ctx, catalog.KindProject, id); err != testsupport.ErrEntityNotFound {
		t.Fatalf("expected ErrEntityNotFound after delete, got %v", err)
	}
}

func TestModuleListDecodesTypedRecords(t *testing.T) {
	module, store := newModule(t)
	ctx := context.Background()

	if _, err := store.Create(ctx, catalog.KindProject, map[string]any{
		"title":        map[string]any{"vi": "Một", "en": "One"},
		"technologies": `["go","bun"]`,
		"is_featured":  "1",
		"sort_order":   2,
	}); err != nil {
		t.Fatalf("seed project: %v", err)
	}

	projects, err := portfolio.List[catalog.Project](ctx, module, catalog.KindProject)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	if got := projects[0].Title.Resolve(locale.English); got != "One" {
		t.Fatalf("expected title %q, got %q", "One", got)
	}
}
