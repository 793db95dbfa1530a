package direction

import "testing"

func env(m map[string]string) Lookup {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestDetectDownstreamOverride(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_DOWNSTREAM": "1"}))
	if d != Downstream {
		t.Errorf("Detect() = %v, want Downstream", d)
	}
}

func TestDetectUpstreamOverride(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_UPSTREAM": "1"}))
	if d != Upstream {
		t.Errorf("Detect() = %v, want Upstream", d)
	}
}

func TestDetectDownstreamOverrideWinsOverUpstream(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_DOWNSTREAM": "1", "GIT_UPSTREAM": "1"}))
	if d != Downstream {
		t.Errorf("Detect() = %v, want Downstream", d)
	}
}

func TestDetectPullAction(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_REFLOG_ACTION": "pull origin main"}))
	if d != Downstream {
		t.Errorf("Detect() = %v, want Downstream", d)
	}
}

func TestDetectPullRebaseAction(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_REFLOG_ACTION": "pull --rebase origin main"}))
	if d != Upstream {
		t.Errorf("Detect() = %v, want Upstream", d)
	}
}

func TestDetectMergeOriginAction(t *testing.T) {
	d := Detect(env(map[string]string{"GIT_REFLOG_ACTION": "merge origin/main"}))
	if d != Downstream {
		t.Errorf("Detect() = %v, want Downstream", d)
	}
}

func TestDetectDefaultUpstream(t *testing.T) {
	d := Detect(env(map[string]string{}))
	if d != Upstream {
		t.Errorf("Detect() = %v, want Upstream", d)
	}
	d = Detect(env(map[string]string{"GIT_REFLOG_ACTION": "commit"}))
	if d != Upstream {
		t.Errorf("Detect() = %v, want Upstream", d)
	}
}
