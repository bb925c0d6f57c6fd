// Package api handles incoming HTTP requests for the task resource: routing,
// request validation, error mapping and response formatting. It adapts HTTP
// to the operations of service.TaskService.
package api
