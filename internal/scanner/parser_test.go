package scanner

import (
	"strings"
	"testing"
)

// TestParserExtractImages tests image source extraction and resolution.
func TestParserExtractImages(t *testing.T) {
	t.Parallel()

	t.Run("extracts and resolves image sources", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://www.example.com/gallery/")
		if err != nil {
			t.Fatal(err)
		}

		body := `<html><head>
<link rel="icon" href="/favicon.ico">
</head><body>
<img src="https://cdn.example.com/a.png">
<img src="/images/b.jpg">
<img src="c.gif">
<img src="//static.example.com/d.png">
</body></html>`

		images, err := parser.ExtractImages(strings.NewReader(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{
			"https://www.example.com/favicon.ico",
			"https://cdn.example.com/a.png",
			"https://www.example.com/images/b.jpg",
			"https://www.example.com/gallery/c.gif",
			"https://static.example.com/d.png",
		}

		if len(images) != len(want) {
			t.Fatalf("got %d images %v, expected %d", len(images), images, len(want))
		}
		for i := range want {
			if images[i] != want[i] {
				t.Errorf("images[%d] = %q, expected %q", i, images[i], want[i])
			}
		}
	})

	t.Run("skips images without a resolvable address", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://www.example.com/")
		if err != nil {
			t.Fatal(err)
		}

		body := `<body>
<img>
<img src="">
<img src="data:image/png;base64,iVBORw0KGgo=">
<img src="javascript:void(0)">
<img src="ok.png">
</body>`

		images, err := parser.ExtractImages(strings.NewReader(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(images) != 1 || images[0] != "https://www.example.com/ok.png" {
			t.Errorf("got %v, expected only ok.png", images)
		}
	})

	t.Run("tolerates malformed HTML", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://www.example.com/")
		if err != nil {
			t.Fatal(err)
		}

		body := `<body><div><img src="x.png"><p>unclosed`

		images, err := parser.ExtractImages(strings.NewReader(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(images) != 1 {
			t.Errorf("got %d images, expected 1", len(images))
		}
	})

	t.Run("ignores stylesheet links", func(t *testing.T) {
		t.Parallel()

		parser, err := NewParser("https://www.example.com/")
		if err != nil {
			t.Fatal(err)
		}

		body := `<head><link rel="stylesheet" href="/main.css"></head>`

		images, err := parser.ExtractImages(strings.NewReader(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(images) != 0 {
			t.Errorf("got %v, expected no images", images)
		}
	})
}

// TestNewParser tests parser construction.
func TestNewParser(t *testing.T) {
	t.Parallel()

	if _, err := NewParser("https://www.example.com/"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := NewParser("http://\x00bad/"); err == nil {
		t.Error("expected an error for a malformed base URL")
	}
}
