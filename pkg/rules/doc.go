// Package rules provides the extension-based rule table used by dirsort.
//
// A rule maps a lowercase file extension (including the leading dot) to
// the name of a target subdirectory. Rules are written on the command line
// or in a config file as `EXT=SUBDIR` tokens:
//
//	.txt=documents
//	.jpg=images
//	=noext
//	*=misc
//
// # Resolution
//
// A file's extension is the suffix starting at the last dot of its name,
// lowercased. Leading dots do not start an extension, so `.bashrc` has
// none. An exact key match wins; otherwise the wildcard `*` rule applies;
// otherwise the file is unmatched. The empty key `""` matches files
// without an extension and takes precedence over the wildcard.
package rules
