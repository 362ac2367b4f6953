package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"uxfomo/internal/persistence"
	"uxfomo/internal/profile"
	"uxfomo/internal/store"
	"uxfomo/internal/testsupport"
)

func TestShowDefaults(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "show")
	requireContains(t, out, "Juan Pérez")
	requireContains(t, out, "@juanuxdesign")
	requireContains(t, out, "LinkedIn")
	requireContains(t, out, "Rediseño Mobile App")
	requireContains(t, out, "(empty)")
	requireContains(t, out, "defaults")
	if strings.Contains(out, "GitHub") {
		t.Fatalf("empty links should be hidden:\n%s", out)
	}
}

func TestSetFieldPersists(t *testing.T) {
	env := setupCLITestEnv(t)

	requireContains(t, env.mustRun(t, "set", "name", "Ana"), "Updated name")
	requireContains(t, env.mustRun(t, "set", "nick", "ana.ux"), "Updated nick")

	rec := env.record(t)
	if rec.Name != "Ana" || rec.Nick != "ana.ux" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if rec.Bio != profile.Defaults().Bio {
		t.Fatal("untouched fields should keep their defaults")
	}
}

func TestSetRejectsLongBio(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, env.configPath, "set", "bio", strings.Repeat("a", profile.MaxBioLength+1))
	if !errors.Is(err, profile.ErrBioTooLong) {
		t.Fatalf("expected ErrBioTooLong, got %v", err)
	}
	_, _, err = runCLI(t, env.configPath, "set", "avatar", "https://example.com/a.png")
	if err == nil {
		t.Fatal("expected set avatar to point at the avatar command")
	}
}

func TestLinkCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	env.mustRun(t, "link", "set", "Dribbble", "https://dribbble.com/ana")
	env.mustRun(t, "link", "name", "dribbble", "Dribbble Shots")
	env.mustRun(t, "link", "order", "dribbble", "github")
	env.mustRun(t, "link", "clear", "website")

	rec := env.record(t)
	if rec.Links["dribbble"] != "https://dribbble.com/ana" {
		t.Fatalf("link not stored: %v", rec.Links)
	}
	if rec.LinkNames["dribbble"] != "Dribbble Shots" {
		t.Fatalf("label not stored: %v", rec.LinkNames)
	}
	if rec.LinksOrder[0] != "dribbble" || rec.LinksOrder[1] != "github" {
		t.Fatalf("unexpected order %v", rec.LinksOrder)
	}
	if url, ok := rec.Links["website"]; !ok || url != "" {
		t.Fatalf("website should be cleared but kept, got %q (%v)", url, ok)
	}

	_, _, err := runCLI(t, env.configPath, "link", "remove", "myspace")
	if !errors.Is(err, profile.ErrUnknownLink) {
		t.Fatalf("expected ErrUnknownLink, got %v", err)
	}
}

func TestStatSet(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "stat", "set", "followers", "2k")
	if got := env.record(t).Stats["followers"]; got != "2k" {
		t.Fatalf("unexpected followers %q", got)
	}
}

func TestFeaturedCommands(t *testing.T) {
	env := setupCLITestEnv(t)
	image := testsupport.WritePNG(t, filepath.Join(env.baseDir, "shot.png"))

	env.mustRun(t, "featured", "add", "--file", image, "--caption", "Local shot")
	env.mustRun(t, "featured", "add", "https://example.com/4.png")

	_, _, err := runCLI(t, env.configPath, "featured", "add", "https://example.com/5.png")
	if !errors.Is(err, profile.ErrFeaturedLimit) {
		t.Fatalf("expected ErrFeaturedLimit, got %v", err)
	}

	rec := env.record(t)
	if len(rec.FeaturedContent) != profile.MaxFeaturedItems {
		t.Fatalf("expected %d items, got %d", profile.MaxFeaturedItems, len(rec.FeaturedContent))
	}
	if rec.FeaturedContent[2].URL != testsupport.InlinePNG() {
		t.Fatalf("local image not embedded: %q", rec.FeaturedContent[2].URL)
	}

	env.mustRun(t, "featured", "move", "3", "1")
	env.mustRun(t, "featured", "remove", "4")
	env.mustRun(t, "featured", "update", "2", "--caption", "Renamed")

	rec = env.record(t)
	if len(rec.FeaturedContent) != 3 {
		t.Fatalf("expected 3 items, got %d", len(rec.FeaturedContent))
	}
	if rec.FeaturedContent[0].Caption != "Local shot" || rec.FeaturedContent[1].Caption != "Renamed" {
		t.Fatalf("unexpected featured order %+v", rec.FeaturedContent)
	}

	_, _, err = runCLI(t, env.configPath, "featured", "remove", "9")
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Fatalf("expected out of range error, got %v", err)
	}

	requireContains(t, env.mustRun(t, "featured", "list"), "inline image/png")
}

func TestResetRequiresConfirmation(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "set", "name", "Ana")

	if _, _, err := runCLI(t, env.configPath, "reset"); err == nil {
		t.Fatal("reset without --yes should fail")
	}
	if env.record(t).Name != "Ana" {
		t.Fatal("unconfirmed reset must not change the profile")
	}

	requireContains(t, env.mustRun(t, "reset", "--yes"), "reset to defaults")
	if env.record(t).Name != profile.Defaults().Name {
		t.Fatal("reset should restore the default name")
	}
}

func TestExportCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "export")
	requireContains(t, out, ".json")
	entries, err := os.ReadDir(env.cfg.Paths.ExportDir)
	if err != nil || len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "perfil-uxfomo-") {
		t.Fatalf("expected one document in export dir, got %v (%v)", entries, err)
	}

	image := testsupport.WritePNG(t, filepath.Join(env.baseDir, "me.png"))
	env.mustRun(t, "avatar", "--file", image)

	target := filepath.Join(env.baseDir, "out.zip")
	out = env.mustRun(t, "export", "--output", target)
	requireContains(t, out, "avatar.png, data.json")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	out = env.mustRun(t, "export", "--format", "zip", "--no-profile", "--json", "--output", env.baseDir)
	requireContains(t, out, `"files": [`)
	requireContains(t, out, `"avatar.png"`)

	_, _, err = runCLI(t, env.configPath, "export", "--format", "json", "--no-profile")
	if err == nil || !strings.Contains(err.Error(), "nothing selected") {
		t.Fatalf("expected nothing-to-export error, got %v", err)
	}
}

func TestExportNoteFollowsProfileData(t *testing.T) {
	env := setupCLITestEnv(t)
	env.mustRun(t, "avatar", testsupport.CorruptInline)

	out := env.mustRun(t, "export", "--format", "zip", "--no-profile", "--output", filepath.Join(env.baseDir, "media.zip"))
	requireContains(t, out, "Skipped")
	requireContains(t, out, "not in the archive")
	if strings.Contains(out, "data.json") {
		t.Fatalf("archive without profile data must not mention data.json:\n%s", out)
	}

	out = env.mustRun(t, "export", "--format", "zip", "--output", filepath.Join(env.baseDir, "full.zip"))
	requireContains(t, out, "skipped images stay embedded in data.json")
}

// quotaStore accepts reads but rejects every write.
type quotaStore struct {
	*store.MemoryStore
}

func (quotaStore) Set(context.Context, string, []byte) error {
	return store.ErrQuotaExceeded
}

func TestApplySessionReportsRejectedMutationAndFailedWrite(t *testing.T) {
	ctx := context.Background()
	gw := persistence.NewGateway(quotaStore{store.NewMemoryStore()}, "uxfomo_profile_data")
	session, _ := persistence.OpenSession(ctx, gw)

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)
	cmd.SetOut(&out)

	err := applySession(cmd, session, "Updated",
		profile.SetField(profile.FieldName, "Ana"),
		profile.SetField(profile.FieldBio, strings.Repeat("x", profile.MaxBioLength+1)),
	)
	if !errors.Is(err, profile.ErrBioTooLong) {
		t.Fatalf("expected rejected mutation in error, got %v", err)
	}
	if !errors.Is(err, store.ErrQuotaExceeded) {
		t.Fatalf("expected failed write in error, got %v", err)
	}

	err = applySession(cmd, session, "Updated", profile.SetField(profile.FieldNick, "ana"))
	if !errors.Is(err, store.ErrQuotaExceeded) || !strings.HasPrefix(err.Error(), "change not saved: ") {
		t.Fatalf("expected save failure, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be printed on failure, got %q", out.String())
	}
}

func TestConfigCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out := env.mustRun(t, "config", "validate")
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Store: file")

	requireContains(t, env.mustRun(t, "config", "show"), "[export]")

	target := filepath.Join(t.TempDir(), "config.toml")
	requireContains(t, env.mustRun(t, "config", "init", "--path", target), "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, env.configPath, "config", "init", "--path", target); err == nil {
		t.Fatal("init should refuse to overwrite without --overwrite")
	}
}
