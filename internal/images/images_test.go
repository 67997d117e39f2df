package images

import (
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIsValidImageURL(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"thumbnail host", "https://thumbnail.image.rakuten.co.jp/@0_mall/shop/cabinet/item01.jpg", true},
		{"shop host png", "https://shop.r10s.jp/shop/cabinet/main.png", true},
		{"uppercase extension", "https://image.rakuten.co.jp/shop/cabinet/PHOTO.JPG", true},
		{"extension before query", "https://tshop.r10s.jp/shop/cabinet/a.webp?_ex=500x500", true},
		{"foreign host", "https://example.com/cabinet/item.jpg", false},
		{"no image extension", "https://image.rakuten.co.jp/shop/cabinet/page.html", false},
		{"extension only in query", "https://image.rakuten.co.jp/shop/cabinet/page?f=a.jpg", false},
		{"logo keyword", "https://image.rakuten.co.jp/shop/cabinet/logo.jpg", false},
		{"keyword case insensitive", "https://image.rakuten.co.jp/shop/cabinet/Top_BANNER.jpg", false},
		{"tracking pixel", "https://image.rakuten.co.jp/shop/1x1.gif", false},
		{"relative path", "/shop/cabinet/item.jpg", false},
		{"not a url", "::not a url", false},
		{"data uri", "data:image/png;base64,AAAA", false},
		{"ftp scheme", "ftp://image.rakuten.co.jp/a.jpg", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rules.IsValidImageURL(tt.url); got != tt.want {
				t.Errorf("IsValidImageURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestIsValidImageURLAcceptedProperties(t *testing.T) {
	rules := DefaultRules()
	samples := []string{
		"https://thumbnail.image.rakuten.co.jp/@0_mall/a/cabinet/01.jpg",
		"https://shop.r10s.jp/a/b_ex.png",
		"http://item.rakuten.co.jp/x/y.gif",
		"https://shop-pro.jp/img/p.jpeg",
		"https://image.rakuten.co.jp/x/icon.jpg",
		"https://example.org/a.jpg",
	}

	for _, s := range samples {
		if !rules.IsValidImageURL(s) {
			continue
		}
		u, err := url.Parse(s)
		if err != nil {
			t.Fatalf("accepted URL %q does not parse: %v", s, err)
		}
		if !containsAny(u.Hostname(), rules.Domains) {
			t.Errorf("accepted URL %q has host outside allow-list", s)
		}
		if !containsAny(strings.ToLower(u.Path), rules.Extensions) {
			t.Errorf("accepted URL %q has no image extension", s)
		}
		if containsAny(strings.ToLower(s), rules.Exclude) {
			t.Errorf("accepted URL %q contains an excluded keyword", s)
		}
	}
}

func TestQualityScore(t *testing.T) {
	tests := []struct {
		url  string
		want int
	}{
		{"img_ex_main.jpg", 150},
		{"img_t.jpg", 20},
		{"img_s.jpg", 40},
		{"img_m.jpg", 60},
		{"img_l.jpg", 80},
		{"img_ex_l_m.jpg", 100},
		{"plain.jpg", 0},
		{"photo_500x500.jpg", 100},
		{"photo_200x100.jpg", 20},
		{"photo_100x200.jpg", 50},
		{"item01.jpg", 30},
		{"item_1.jpg", 30},
		{"main_01.jpg", 80},
		{"photo_99999999999999999999x2.jpg", 100},
		{"photo_3000000000x1.jpg", 100},
		{"photo_4294967296x4294967296.jpg", 100},
		{"photo_99999999999999999999x0.jpg", 0},
		{"photo_0x500.jpg", 0},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := QualityScore(tt.url); got != tt.want {
				t.Errorf("QualityScore(%q) = %d, want %d", tt.url, got, tt.want)
			}
			if again := QualityScore(tt.url); again != QualityScore(tt.url) {
				t.Errorf("QualityScore(%q) is not stable", tt.url)
			}
		})
	}

	if QualityScore("img_ex_main.jpg") <= QualityScore("img_t.jpg") {
		t.Error("expected extra-large main image to outrank thumbnail")
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name    string
		api     []string
		scraped []string
		want    []string
	}{
		{"literal case", []string{"x", "y"}, []string{"y", "z"}, []string{"x", "y", "z"}},
		{"empty scraped", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"empty api", nil, []string{"a", "a", "b"}, []string{"a", "b"}},
		{"scraped duplicates", []string{"a"}, []string{"b", "a", "b", "c"}, []string{"a", "b", "c"}},
		{"api duplicates kept", []string{"a", "a"}, []string{"a"}, []string{"a", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Merge(tt.api, tt.scraped)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Merge mismatch (-want +got):\n%s", diff)
			}
			if len(got) > len(tt.api)+len(tt.scraped) {
				t.Errorf("Merge produced %d entries from %d inputs", len(got), len(tt.api)+len(tt.scraped))
			}
			for i, u := range tt.api {
				if got[i] != u {
					t.Errorf("API image %d moved: got %q, want %q", i, got[i], u)
				}
			}
		})
	}
}

func TestMergeDoesNotAliasInput(t *testing.T) {
	api := make([]string, 1, 4)
	api[0] = "a"
	got := Merge(api, []string{"b"})
	got[0] = "changed"
	if api[0] != "a" {
		t.Error("Merge must not write through to the API slice")
	}
}

func TestNormalizeURL(t *testing.T) {
	base, _ := url.Parse("https://item.rakuten.co.jp/shop/item-1/")

	tests := []struct {
		src  string
		want string
	}{
		{"//image.rakuten.co.jp/a.jpg", "https://image.rakuten.co.jp/a.jpg"},
		{"/cabinet/a.jpg", "https://item.rakuten.co.jp/cabinet/a.jpg"},
		{"https://shop.r10s.jp/a.jpg", "https://shop.r10s.jp/a.jpg"},
		{"cabinet/a.jpg", "cabinet/a.jpg"},
	}

	for _, tt := range tests {
		if got := normalizeURL(tt.src, base); got != tt.want {
			t.Errorf("normalizeURL(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestParseRules(t *testing.T) {
	custom := []byte(`
selectors:
  - name: gallery
    selectors: [".gallery img"]
domains: [cdn.example.jp]
extensions: [".avif"]
exclude: [sprite]
`)
	rules, err := ParseRules(custom)
	if err != nil {
		t.Fatalf("ParseRules failed: %v", err)
	}
	if !rules.IsValidImageURL("https://cdn.example.jp/p/1.avif") {
		t.Error("custom rules should accept their own domain and extension")
	}
	if rules.IsValidImageURL("https://cdn.example.jp/p/sprite.avif") {
		t.Error("custom exclusion should apply")
	}
	if diff := cmp.Diff([]string{".gallery img"}, rules.AllSelectors()); diff != "" {
		t.Errorf("AllSelectors mismatch (-want +got):\n%s", diff)
	}

	invalid := map[string]string{
		"no selectors":   "domains: [a]\nextensions: [.jpg]\n",
		"empty group":    "selectors:\n  - name: x\ndomains: [a]\nextensions: [.jpg]\n",
		"no domains":     "selectors:\n  - name: x\n    selectors: [img]\nextensions: [.jpg]\n",
		"no extensions":  "selectors:\n  - name: x\n    selectors: [img]\ndomains: [a]\n",
		"malformed yaml": "selectors: [",
	}
	for name, doc := range invalid {
		if _, err := ParseRules([]byte(doc)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestDefaultRulesGroupOrder(t *testing.T) {
	rules := DefaultRules()
	var names []string
	for _, g := range rules.Selectors {
		names = append(names, g.Name)
	}
	if diff := cmp.Diff([]string{"main", "thumbnail", "detail", "generic"}, names); diff != "" {
		t.Errorf("selector group order mismatch (-want +got):\n%s", diff)
	}
}
