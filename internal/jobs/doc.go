// Package jobs implements background jobs for the festival API.
//
// Jobs run independently of request handling, log their own errors and
// never stop the server.
//
//   - StagingSweeper: removes staged photos left behind by interrupted uploads
//
//	sweeper := jobs.NewStagingSweeper(photoService, 15*time.Minute, time.Hour)
//	sweeper.Start()
//	defer sweeper.Stop()
package jobs
