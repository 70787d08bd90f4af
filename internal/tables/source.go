package tables

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"view-generator/internal/errors"
)

// readDocuments loads a Unity YAML file and returns the root node of each
// document.
func readDocuments(path string) ([]*yaml.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	docs, err := parseDocuments(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}

	return docs, nil
}

// parseDocuments decodes every document of data after removing the
// directives and object headers YAML parsers reject.
func parseDocuments(data []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(normalize(data)))

	var docs []*yaml.Node

	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, errors.Mark(err, errors.ErrMalformedSource)
		}

		if root := documentRoot(&doc); root != nil {
			docs = append(docs, root)
		}
	}

	return docs, nil
}

// normalize drops "%" directive lines and reduces "--- !u!NN &ID" document
// headers to a bare "---".
func normalize(data []byte) []byte {
	var out bytes.Buffer

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := sc.Text()

		switch {
		case strings.HasPrefix(line, "%"):
			continue
		case strings.HasPrefix(line, "--- "):
			line = "---"
		}

		out.WriteString(line)
		out.WriteByte('\n')
	}

	return out.Bytes()
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}

	return nil
}

// child returns the value stored under key in mapping n, or nil.
func child(n *yaml.Node, key string) *yaml.Node {
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}

	return nil
}

// items returns the elements of sequence n, or nil when n is not a
// sequence.
func items(n *yaml.Node) []*yaml.Node {
	if n == nil || n.Kind != yaml.SequenceNode {
		return nil
	}

	return n.Content
}

// scalar returns the value of scalar n. Null scalars report false.
func scalar(n *yaml.Node) (string, bool) {
	if n == nil || n.Kind != yaml.ScalarNode || n.Tag == "!!null" {
		return "", false
	}

	return n.Value, true
}
