package main

import (
	"context"
	"fmt"
	"log"
	"net/http/httptest"

	"github.com/caarlos0/env/v11"

	portfolio "github.com/goliatone/go-portfolio"
	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/locale"
	"github.com/goliatone/go-portfolio/pkg/testsupport"
)

type appConfig struct {
	APIURL    string `env:"PORTFOLIO_API_URL"`
	AssetBase string `env:"PORTFOLIO_ASSET_BASE"`
	Language  string `env:"PORTFOLIO_LANG" envDefault:"vi"`
	LogLevel  string `env:"PORTFOLIO_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PORTFOLIO_LOG_FORMAT" envDefault:"pretty"`
}

func main() {
	ctx := context.Background()

	var appCfg appConfig
	if err := env.Parse(&appCfg); err != nil {
		log.Fatalf("parse environment: %v", err)
	}

	// With no PORTFOLIO_API_URL the demo runs against the in-process
	// reference backend so it works without any deployment.
	if appCfg.APIURL == "" {
		store, err := testsupport.NewStore(ctx)
		if err != nil {
			log.Fatalf("reference store: %v", err)
		}
		defer store.Close()

		backend := httptest.NewServer(testsupport.NewServer(store))
		defer backend.Close()

		appCfg.APIURL = backend.URL
		fmt.Printf("using in-process backend at %s\n", appCfg.APIURL)
	}

	cfg := portfolio.DefaultConfig()
	cfg.BaseURL = appCfg.APIURL
	cfg.AssetBase = appCfg.AssetBase
	cfg.DefaultLanguage = locale.ParseLanguage(appCfg.Language)
	cfg.Logging = portfolio.LoggingConfig{
		Provider: "gologger",
		Level:    appCfg.LogLevel,
		Format:   appCfg.LogFormat,
	}

	module, err := portfolio.New(cfg)
	if err != nil {
		log.Fatalf("portfolio module: %v", err)
	}

	if err := run(ctx, module); err != nil {
		log.Fatalf("example: %v", err)
	}
}

func run(ctx context.Context, module *portfolio.Module) error {
	client := module.Client()

	// Draft a project in Vietnamese only: the save pipeline derives the
	// slug and the resolver covers the missing English copy.
	draft, err := editor.NewSession(catalog.KindProject)
	if err != nil {
		return err
	}
	if err := draft.SetLocalized("title", locale.Vietnamese, "Dự án trình diễn"); err != nil {
		return err
	}
	if err := draft.SetLocalized("description", locale.Vietnamese, "## Tổng quan\n\nViết bằng Go."); err != nil {
		return err
	}
	if err := draft.SetStringList("technologies", []string{"go", "sqlite"}); err != nil {
		return err
	}
	if err := draft.SetScalar("is_featured", true); err != nil {
		return err
	}

	saved, err := client.Save(ctx, draft)
	if err != nil {
		return err
	}
	fmt.Printf("saved project %v with slug %v\n", saved["id"], saved["slug"])

	// Seed a couple of skills and show the grouped listing the site
	// renders in its skills section.
	for _, skill := range []struct {
		name, category string
		order          int
	}{
		{"Go", "Backend", 1},
		{"PostgreSQL", "Backend", 2},
		{"React", "Frontend", 1},
	} {
		session, err := editor.NewSession(catalog.KindSkill)
		if err != nil {
			return err
		}
		if err := session.SetLocalized("name", locale.English, skill.name); err != nil {
			return err
		}
		if err := session.SetLocalized("category", locale.English, skill.category); err != nil {
			return err
		}
		if err := session.SetScalar("sort_order", skill.order); err != nil {
			return err
		}
		if _, err := client.Save(ctx, session); err != nil {
			return err
		}
	}

	site, err := client.FetchSite(ctx)
	if err != nil {
		return err
	}

	lang := module.Language()
	for _, group := range catalog.GroupSkills(site.Skills) {
		fmt.Printf("%s:\n", group.Key)
		for _, skill := range group.Skills {
			fmt.Printf("  - %s\n", skill.Name.Resolve(lang))
		}
	}

	for _, project := range site.Projects {
		html, err := module.Renderer().RenderLocalized(project.Description, lang)
		if err != nil {
			return err
		}
		fmt.Printf("project %s rendered to %d bytes of HTML\n", project.Title.Resolve(lang), len(html))
	}

	// Delete the demo project; the confirmation callback stands in for
	// the UI prompt.
	projectID := draft.EntityID()
	confirm := func() bool {
		fmt.Printf("deleting project %d\n", projectID)
		return true
	}
	if err := client.Delete(ctx, catalog.KindProject, projectID, confirm); err != nil {
		return err
	}

	return nil
}
