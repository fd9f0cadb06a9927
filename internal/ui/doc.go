// Package ui provides semantic text formatting for pwmn output.
//
// Formatters colour their content when the terminal allows it and fall back
// to plain decorations when NO_COLOR is set or the terminal is dumb:
//
//	ui.Code.Sprint("pwmn connect personal")  // `pwmn connect personal`
//	ui.Path.Sprint("~/.pwmn")                // ~/.pwmn
//	ui.Highlight.Sprint("personal")          // 'personal'
//	ui.Muted.Sprint("3 entries")             // (3 entries)
//	ui.Secret.Sprint(password)               // never decorated
//
// Table lays out entry listings in aligned columns.
package ui
