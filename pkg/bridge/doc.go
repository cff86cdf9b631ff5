// Package bridge exposes the provisioning coordinator to an application
// shell as named plugin methods.
//
// The shell sends a Call with a method name and JSON options. Methods that
// complete later (startAddPaymentPass, completeAddPaymentPass) save the call
// with the Shell and release it once resolved or rejected. Rejections carry a
// stable error code alongside the message:
//
//	{"callbackId":"…","success":false,"error":{"message":"…","code":"TIMEOUT"}}
//
// Channel carries calls and responses as newline-delimited JSON, so the
// plugin can run out of process next to a shell or a test driver.
package bridge
