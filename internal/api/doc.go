// Package api provides the central API layer for assay's Service Locator Pattern.
//
// This package serves as the single point of communication between all assay
// packages, preventing direct inter-package dependencies and enabling clean
// architectural separation. All component functionality is accessed through
// handler interfaces registered with this central API layer.
//
// # Service Locator Pattern
//
// The API package implements the core Service Locator Pattern that is
// **mandatory** for all inter-package communication in assay:
//
//  1. **Handler Interfaces** - Define contracts for each component capability
//     (CatalogHandler, ResearchHandler, ExecutionHandler, etc.)
//
//  2. **Handler Registry** - Central registry for handler implementations
//     with thread-safe registration and access
//
//  3. **Adapter Pattern** - Component packages provide adapters that implement
//     handler interfaces and register with the API layer
//
// This architecture ensures:
// - **Zero circular dependencies** (components only import api, never each other)
// - **Clean separation of concerns** between packages
// - **Enhanced testability** through handler mocking
// - **Runtime flexibility** in handler registration
//
// # Handler Interfaces
//
//   - **CatalogHandler**: Operation discovery, lookup, and full-text search
//   - **ResearchHandler**: Manual signature entries and merged operation views
//   - **ValidationHandler**: Argument validation against merged signatures
//   - **ExecutionHandler**: Safe probing through the execution engine
//   - **ResultStoreHandler**: Append-only recorded probe results
//   - **DocsHandler**: Documentation package generation and export
//   - **ConfigHandler**: Configuration management and runtime settings
//
// # Shared Domain Types
//
// All types shared between components live here: Operation, Parameter,
// Signature, ManualEntry, TestResult, ExecutionOutcome, ValidationResult,
// DocumentationPackage, and their enums (RiskLevel, Confidence,
// ParameterType, ParameterSource, ExecutionErrorKind, SideEffectType).
//
// # Error Handling
//
// The package provides standardized error types:
//   - NotFoundError with IsNotFound and per-resource constructors
//   - ConfirmationRequiredError with IsConfirmationRequired for the
//     execution engine's destructive-operation gate
//   - Sentinel errors for unregistered handlers
//   - HandleError/HandleErrorWithPrefix for uniform tool-surface failures
//
// # Catalog Update Events
//
// Components may subscribe to catalog change notifications published after
// discovery passes, enabling tool surfaces to refresh their advertised
// tool sets without polling.
package api
