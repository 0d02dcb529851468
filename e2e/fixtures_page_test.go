//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
)

// smallPage is a page with one filterable select and one filterable list
const smallPage = `version = 1
title = "E2E Page"

[filter]
debounce_ms = 20
resize_debounce_ms = 20

[ui]
mouse = false
alt_screen = true

[[elements]]
kind = "select"
id = "fruit"
label = "Fruit"

  [[elements.options]]
  text = "Apple"
  value = "apple"

  [[elements.options]]
  text = "Banana"
  value = "banana"

  [[elements.options]]
  text = "Cherry"
  value = "cherry"

[[elements]]
kind = "input"
id = "fruit-search"
label = "Find"

[[elements]]
kind = "list"
id = "fruits"
label = "Fruits"
items = ["Apple", "Banana", "Cherry", "Date"]
search_field = "#fruit-search"
`

// CreateTestWorkspace creates a temporary directory the app runs in
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tf.workspace = tf.t.TempDir()
	return tf.workspace, nil
}

// WritePage writes a page description into the workspace and returns its path
func (tf *TUITestFramework) WritePage(name, content string) (string, error) {
	path := filepath.Join(tf.workspace, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
