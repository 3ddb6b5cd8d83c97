// Copyright 2019-2024 Xu Ruibo (hustxurb@163.com) and Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"time"

	"github.com/zuoyebang/bitalosbuf/butils"
)

// log stays silent until NewLogger installs writers.
var log = &Logger{}

func GetLogger() *Logger {
	return log
}

func IsDebug() bool {
	return log.debug
}

func CloseLog() {
	log.CloseSync()
}

func Info(arg ...interface{})  { log.output(TypeInfo, fmt.Sprint(arg...)) }
func Warn(arg ...interface{})  { log.output(TypeWarn, fmt.Sprint(arg...)) }
func Error(arg ...interface{}) { log.output(TypeError, fmt.Sprint(arg...)) }
func Debug(arg ...interface{}) { log.output(TypeDebug, fmt.Sprint(arg...)) }

func Infof(format string, arg ...interface{})  { log.output(TypeInfo, fmt.Sprintf(format, arg...)) }
func Warnf(format string, arg ...interface{})  { log.output(TypeWarn, fmt.Sprintf(format, arg...)) }
func Errorf(format string, arg ...interface{}) { log.output(TypeError, fmt.Sprintf(format, arg...)) }
func Debugf(format string, arg ...interface{}) { log.output(TypeDebug, fmt.Sprintf(format, arg...)) }

// Cost logs how long the returned func took to be called.
func Cost(arg ...interface{}) func() {
	begin := time.Now()
	return func() {
		log.output(TypeInfo, fmt.Sprint(arg...)+" cost: "+butils.FmtDuration(time.Since(begin)))
	}
}
