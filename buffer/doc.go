// Package buffer implements the line-indexed document model that the
// annotation core consumes as its line map.
//
// Text is stored as lines of runes. Character offsets are rune offsets into
// the whole document with '\n' counted as one character. Each line may carry
// one message bundle; edits that delete or merge lines evict the bundles of
// the lines that disappear and report them through
// EvictedBundleIDsFromLastEdit.
package buffer
