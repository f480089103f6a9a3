package importer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/internal/api"
)

const projectDoc = `---
kind: project
title_vi: Dự án demo
title_en: Demo project
description_en: English summary
tags:
  - go
  - sqlite
sort_order: 2
---
Phần **mô tả** tiếng Việt.
`

func TestBuildSessionFromProjectDoc(t *testing.T) {
	session, err := BuildSession([]byte(projectDoc))
	if err != nil {
		t.Fatalf("BuildSession() error = %v", err)
	}
	defer session.Close()

	if session.Kind() != catalog.KindProject {
		t.Fatalf("kind = %s", session.Kind())
	}

	title, _ := session.Localized("title")
	if title.VI != "Dự án demo" || title.EN != "Demo project" {
		t.Fatalf("title = %+v", title)
	}

	desc, _ := session.Localized("description")
	if desc.VI != "Phần **mô tả** tiếng Việt." || desc.EN != "English summary" {
		t.Fatalf("description = %+v", desc)
	}

	fields := session.Fields()
	if techs, _ := fields["technologies"].([]string); len(techs) != 2 {
		t.Fatalf("technologies = %v", fields["technologies"])
	}
	if got, _ := fields["is_active"].(bool); !got {
		t.Fatal("expected active by default")
	}
	if got, _ := fields["sort_order"].(int); got != 2 {
		t.Fatalf("sort_order = %v", fields["sort_order"])
	}
}

func TestBuildSessionSkillUsesSubtitleAsCategory(t *testing.T) {
	doc := `---
kind: skill
title_vi: Go
title_en: Go
subtitle_vi: Hệ thống
subtitle_en: Systems
active: false
---
`
	session, err := BuildSession([]byte(doc))
	if err != nil {
		t.Fatalf("BuildSession() error = %v", err)
	}
	defer session.Close()

	category, _ := session.Localized("category")
	if category.VI != "Hệ thống" || category.EN != "Systems" {
		t.Fatalf("category = %+v", category)
	}
	if got, _ := session.Fields()["is_active"].(bool); got {
		t.Fatal("active: false not honoured")
	}
}

func TestBuildSessionRejectsUnknownKind(t *testing.T) {
	if _, err := BuildSession([]byte("---\nkind: widget\ntitle_vi: x\n---\n")); err == nil {
		t.Fatal("expected unknown kind error")
	}
}

func TestImportDirCollectsPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "good.md", projectDoc)
	writeDoc(t, dir, "bad.md", "---\nkind: widget\n---\n")
	writeDoc(t, dir, "ignored.txt", "not markdown")

	saves := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		saves++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": saves})
	}))
	defer srv.Close()

	client, err := api.New(api.Config{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("api.New() error = %v", err)
	}

	report, err := New(client, nil).ImportDir(context.Background(), dir)
	if err != nil {
		t.Fatalf("ImportDir() error = %v", err)
	}

	if report.Imported != 1 {
		t.Fatalf("Imported = %d", report.Imported)
	}
	if len(report.Failures) != 1 || filepath.Base(report.Failures[0].Path) != "bad.md" {
		t.Fatalf("Failures = %+v", report.Failures)
	}
	if saves != 1 {
		t.Fatalf("backend saw %d saves", saves)
	}
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}
