// Package ports defines the interfaces (ports) that connect the application
// layer to infrastructure adapters.
//
// Ports are the boundaries between the application core and the outside
// world. They define what the application needs from external systems
// without specifying how those needs are fulfilled.
//
// # Port Interfaces
//
//   - [EventSource]: Delivers file creation events from the watch folder
//   - [Printer]: Runs the external print command for one job
//   - [Renamer]: Marks a printed file with its terminal suffix
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (internal/app) depends only on these interfaces.
// Infrastructure adapters (internal/adapters) implement them with fsnotify,
// os/exec, os.Rename and zerolog.
package ports
