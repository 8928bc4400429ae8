package gosetups

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/accsetupsviewer/server/internal/domain"
)

// setupFilesPattern captures the object literal the viewer page assigns to
// jsonSetupFiles right before jsonSetupFilesOrder.
var setupFilesPattern = regexp.MustCompile(`const jsonSetupFiles = (\{[\s\S]*?\});\s*const jsonSetupFilesOrder =`)

var jsonSuffix = regexp.MustCompile(`(?i)\.json$`)

// ExtractFinalValues finds the setupFinalValues object for filename in a converter page.
// It walks jsonSetupFiles[filename].data.uploads[key].setupFinalValues, where key is
// picked by MatchUploadKey. Any missing marker, invalid JSON or non-object level yields
// ok == false.
func ExtractFinalValues(page []byte, filename string) (domain.FinalValues, bool) {
	literal, ok := findSetupFiles(page)
	if !ok {
		return nil, false
	}

	files, ok := asObject(literal)
	if !ok {
		return nil, false
	}
	file, ok := asObject(files[filename])
	if !ok {
		return nil, false
	}
	data, ok := asObject(file["data"])
	if !ok {
		return nil, false
	}
	uploads, ok := asObject(data["uploads"])
	if !ok {
		return nil, false
	}

	keys, err := objectKeys(data["uploads"])
	if err != nil {
		return nil, false
	}
	key, ok := MatchUploadKey(keys, filename)
	if !ok {
		return nil, false
	}

	upload, ok := asObject(uploads[key])
	if !ok {
		return nil, false
	}
	raw := upload["setupFinalValues"]
	if _, ok := asObject(raw); !ok {
		return nil, false
	}

	var values domain.FinalValues
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, false
	}
	return values, true
}

// findSetupFiles looks for the assignment inside <script> elements first and falls back
// to scanning the whole page when the document does not parse as expected.
func findSetupFiles(page []byte) ([]byte, bool) {
	if root, err := html.Parse(bytes.NewReader(page)); err == nil {
		var found []byte
		goquery.NewDocumentFromNode(root).Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if m := setupFilesPattern.FindStringSubmatch(s.Text()); m != nil {
				found = []byte(m[1])
				return false
			}
			return true
		})
		if found != nil {
			return found, true
		}
	}

	if m := setupFilesPattern.FindSubmatch(page); m != nil {
		return m[1], true
	}
	return nil, false
}

type keyRule func(key, base string) bool

// uploadKeyRules are tried in order over all keys; the first rule with a hit wins.
var uploadKeyRules = []keyRule{
	func(key, base string) bool { return key == base },
	func(key, base string) bool { return strings.EqualFold(key, base) },
	func(key, base string) bool { return strings.Contains(strings.ToLower(key), strings.ToLower(base)) },
}

// MatchUploadKey picks the upload entry for filename: exact match on the name without
// ".json", then a case-insensitive match, then a case-insensitive substring match, then
// the first key. An empty key is never selected.
func MatchUploadKey(keys []string, filename string) (string, bool) {
	if len(keys) == 0 {
		return "", false
	}
	base := jsonSuffix.ReplaceAllString(filename, "")
	for _, rule := range uploadKeyRules {
		for _, key := range keys {
			if key != "" && rule(key, base) {
				return key, true
			}
		}
	}
	if keys[0] == "" {
		return "", false
	}
	return keys[0], true
}

// asObject decodes raw when it holds a JSON object. Arrays, null and scalars are rejected.
func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
