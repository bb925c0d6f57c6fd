// Package testutils provides testing utilities for the task API.
//
// It contains:
//  1. MemoryTaskStore, an in-process store.TaskStore used wherever a real
//     MongoDB server is not needed
//  2. Builders for test tasks and task inputs
//  3. A fully wired API test server (NewTaskAPIServer)
//  4. HTTP helpers for executing requests and asserting error responses
//
// Typical use:
//
//	srv, taskStore := testutils.NewTaskAPIServer(t)
//	task := testutils.MustInsertTask(t, taskStore, testutils.WithTaskTitle("A"))
//	resp := testutils.ExecuteJSONRequest(t, srv, http.MethodGet, "/api/tasks/"+task.ID, nil)
package testutils
