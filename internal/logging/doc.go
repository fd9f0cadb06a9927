// Package logger provides console and file logging for pwmn commands.
//
// # Verbosity Levels
//
//   - --verbose: shows info and warning messages
//   - --debug: shows all messages including debug details and errors
//
// Without flags only WarnfAlways output reaches the terminal.
//
// # File Sink
//
// When a log file is configured, OpenFile returns a zerolog logger writing
// JSON lines to a lumberjack rotated file. Set it as Logger.Sink and every
// message is mirrored there at its level, whatever the console verbosity.
// Lines pass through a Redactor first.
//
// Messages never include register names or passwords. Use the address
// prefix to refer to a register.
//
// # Usage
//
//	log := Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Created register %s", prefix)
package logger
