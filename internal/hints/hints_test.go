package hints

import (
	"strings"
	"testing"
)

func TestForBrowserConnect(t *testing.T) {
	// Not parallel: manipulates process env and the container probe.
	orig := IsInContainer
	defer func() { IsInContainer = orig }()

	t.Run("container suggests sandbox flag", func(t *testing.T) {
		IsInContainer = func() bool { return true }
		t.Setenv("ROD_NO_SANDBOX", "")
		t.Setenv("ROD_BROWSER_BIN", "")

		got := ForBrowserConnect()
		if !strings.Contains(got, "ROD_NO_SANDBOX=1") {
			t.Errorf("sandbox hint missing: %q", got)
		}
		if !strings.Contains(got, "--backend local") {
			t.Errorf("local backend hint missing: %q", got)
		}
	})

	t.Run("outside container skips sandbox flag", func(t *testing.T) {
		IsInContainer = func() bool { return false }
		t.Setenv("CI", "")
		t.Setenv("GITHUB_ACTIONS", "")
		t.Setenv("GITLAB_CI", "")
		t.Setenv("JENKINS_URL", "")
		t.Setenv("ROD_BROWSER_BIN", "")

		got := ForBrowserConnect()
		if strings.Contains(got, "ROD_NO_SANDBOX") {
			t.Errorf("sandbox hint present outside container: %q", got)
		}
	})

	t.Run("browser bin set skips bin hint", func(t *testing.T) {
		IsInContainer = func() bool { return false }
		t.Setenv("ROD_BROWSER_BIN", "/usr/bin/chromium")

		got := ForBrowserConnect()
		if strings.Contains(got, "ROD_BROWSER_BIN to use") {
			t.Errorf("bin hint present despite ROD_BROWSER_BIN: %q", got)
		}
	})
}

func TestForTimeout(t *testing.T) {
	t.Parallel()

	got := ForTimeout()
	if !strings.HasPrefix(got, "\n  hint: ") || !strings.Contains(got, "--timeout") {
		t.Errorf("got %q", got)
	}
}

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	t.Run("suggests user config path", func(t *testing.T) {
		t.Parallel()

		got := ForConfigNotFound([]string{
			"mdexport.yaml",
			"/home/u/.config/mdexport/mdexport.yaml",
		})
		if !strings.Contains(got, "--config") {
			t.Errorf("flag hint missing: %q", got)
		}
		if !strings.Contains(got, "/home/u/.config/mdexport/mdexport.yaml") {
			t.Errorf("user path hint missing: %q", got)
		}
	})

	t.Run("no user path searched", func(t *testing.T) {
		t.Parallel()

		got := ForConfigNotFound([]string{"mdexport.yaml"})
		if !strings.Contains(got, "--config") || strings.Contains(got, "create") {
			t.Errorf("got %q", got)
		}
	})
}

func TestForStyleNotFound(t *testing.T) {
	t.Parallel()

	if got := ForStyleNotFound(nil); got != "" {
		t.Errorf("got %q, want empty", got)
	}
	got := ForStyleNotFound([]string{"default", "highlight"})
	if !strings.Contains(got, "default, highlight") {
		t.Errorf("got %q", got)
	}
}
