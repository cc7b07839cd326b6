// Package app composes the game service: it wires domain services to their
// stores and manages their lifecycle.
//
//	internal/app/
//	├── application.go      # Application struct, wiring, and lifecycle
//	├── domain/             # Pure domain logic and models
//	│   ├── game/           # Round settlement and the personality table
//	│   ├── match/          # Opponent match records
//	│   ├── message/        # Advisory messages and template selection
//	│   ├── consent/        # Consent records
//	│   └── report/         # Result aggregation
//	├── services/           # Store-backed services over the domain logic
//	├── storage/            # Store interfaces, memory and postgres backends
//	├── httpapi/            # HTTP handlers and routing
//	└── system/             # Lifecycle management
//
// Domain packages hold the experiment rules and carry no persistence;
// services pair them with a store; httpapi translates HTTP to service calls.
package app
