// Package models defines the client-side data types of the EduCloud auth
// contract: user profiles, request payloads, server responses, and the
// structured results handed to the CLI.
package models
