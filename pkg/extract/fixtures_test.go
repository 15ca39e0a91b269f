// Copyright (c) 2025, The yaspe Authors. All rights reserved.
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

package extract

// Capture fragments shaped like real collector output. Only the lines the
// scanner looks at are kept.

const linuxCapture = `<html><body>
Customer: Acme
Version String: IRIS for UNIX (Red Hat Enterprise Linux for x86-64) 2022.1
Profile run "24hours" started at 00:00 on Jan 02 2024.
<!-- beg_mgstat -->
<div id=mgstat></div>mgstat</font></b><br><pre>
numberofcpus=16:8,globalbuffers=8192
Date,       Time    , Glorefs, RemGrefs
01/02/2024, 00:00:01, 1000, 0
01/02/2024, 00:00:02, 1500.5, 1
</pre>
<!-- end_mgstat -->
<!-- beg_vmstat -->
<div id=vmstat></div>vmstat</font></b><br><pre>
procs -----------memory---------- ---swap-- -----io---- -system-- ------cpu-----
         r  b   swpd   free   buff  cache   si   so    bi    bo   in   cs us sy id wa st
01/02/24 00:00:01 1  0      0 1000000 2000  30000    0    0     5    10  100  200  5  2 93  0  0
01/02/24 00:01:01 2  0      0 1000100 2000  30000    0    0     5    10  100  200  5  2 93  0  0
</pre>
<!-- end_vmstat -->
<div id=iostat></div>iostat</font></b><br><pre>
Linux 5.14.0-284.el9.x86_64 (db01) 	01/02/24 	_x86_64_	(16 CPU)

01/02/24 00:00:01
avg-cpu:  %user   %nice %system %iowait  %steal   %idle
           1,50    0,00    0,50    0,10    0,00   97,90

Device            r/s     w/s     rkB/s     wkB/s
sda              1,00    2,00     10,00     20,00
sdb              3,00    4,00     30,00     40,00
dm-0             5,00    6,00     50,00     60,00

01/02/24 00:01:01
avg-cpu:  %user   %nice %system %iowait  %steal   %idle
           1,60    0,00    0,40    0,10    0,00   97,90

Device            r/s     w/s     rkB/s     wkB/s
sda              1,10    2,10     11,00     21,00
sdb              3,10    4,10     31,00     41,00
dm-0             5,10    6,10     51,00     61,00

</pre>
<div id=nfsiostat></div>nfsiostat</font></b><br><pre>
nfs01:/export/data mounted on /mnt/data:

           ops/s       rpc bklog
           1.00           0.00

read:              ops/s            kB/s           kB/op         retrans    avg RTT (ms)    avg exe (ms)  avg queue (ms)          errors
                   0.500           2.000           4.000        0 (0.0%)           1.000           1.500           0.100        0 (0.0%)
write:             ops/s            kB/s           kB/op         retrans    avg RTT (ms)    avg exe (ms)  avg queue (ms)          errors
                   0.250           1.000           4.000        1 (5.0%)           2.000           2.500           0.200        0 (0.0%)
</pre>
</body></html>
`

const aixCapture = `<html><body>
Version String: Cache for UNIX (IBM AIX for System Power System-64) 2018.1
Profile run "24hours" started at 23:58 on Jan 02 2024.
<!-- beg_vmstat -->
<div id=vmstat></div>vmstat</font></b><br><pre>
System configuration: lcpu=8 mem=16384MB
kthr    memory              page              faults              cpu          time
----- ----------- ------------------------ ------------ ----------------------- --------
 r  b   avm   fre  re  pi  po  fr   sr  cy  in   sy  cs us sy id wa    pc    ec hr mi se
 1  0   100   200   0   0   0   0    0   0  10   20  30  1  2 97  0   0.1   1.0 23:58:00
 1  0   100   200   0   0   0   0    0   0  10   21  30  1  2 97  0   0.1   1.0 23:59:30
 1  0   100   200   0   0   0   0    0   0  10   22  30  1  2 97  0   0.1   1.0 00:00:45
 1  0   100   200   0   0   0   0    0   0  10   23  30  1  2 97  0   0.1   1.0 00:02:10
</pre>
<!-- end_vmstat -->
<div id=iostat></div>iostat</font></b><br><pre>
System configuration: lcpu=80 drives=2 paths=4 vdisks=2
Disks:                      xfers                                read                                write                                  queue                    time
                  %tm    bps   tps  bread  bwrtn   rps    avg    min    max time fail   wps    avg    min    max time fail    avg    min    max   avg   avg  serv
                  act                                    serv   serv   serv outs              serv   serv   serv outs        time   time   time  wqsz  sqsz qfull
hdisk0            2.0  65.5K  13.0  57.3K   8.2K  11.0   0.6    1.5S   0.9     0    0   2.0   0.4    0.3    0.4     0    0   0.0    0.0    0.0    0.0   0.0   3.0  23:59:43
hdisk1            7.0   4.2M 135.0  57.3K   4.2M   7.0   6.9    0.5   20.2     0    0 128.0   0.4    0.3    0.6     0    0   0.0    0.0    0.1    0.0   0.0   4.0  23:59:43
</pre>
<div id=sar-d></div>sar -d</font></b><br><pre>
AIX db01 3 7 00C12345  01/02/24

System configuration: lcpu=8 drives=2 mode=Capped

23:58:00     device    %busy    avque    r+w/s    Kbs/s   avwait   avserv
23:59:00     hdisk1      1      0.0        2      30      0.0      0.5
             hdisk0      3      0.0        4      50      0.0      0.6
00:00:00     hdisk1      5      0.0        6      70      0.0      0.7
             hdisk0      7      0.0        8      90      0.0      0.8

Average      hdisk1      3      0.0        4      50      0.0      0.6
</pre><p align=left>
</body></html>
`

const windowsCapture = `<html><body>
Product Version String: IRIS for Windows (x86-64) 2023.1
Profile run "24hours" started at 10:00 on Jan 02 2024.
<div id=perfmon></div>perfmon</font></b><br><pre>
"(PDH-CSV 4.0) (GMT Standard Time)(0)","\\DB01\Memory\Available MBytes","\\DB01\Processor(_Total)\% Processor Time"
"01/02/2024 10:00:01.123","2048"," "
"01/02/2024 10:00:31.456","2000.5","12.5"
</pre>
<!-- end_win_perfmon -->
</body></html>
`
